package engineconfigs

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"

	"github.com/reusee/gtscript/cmds"
	"github.com/reusee/gtscript/configs"
	"github.com/reusee/gtscript/logs"
	"github.com/reusee/gtscript/modes"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config", "read settings from a CUE file")

func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {

	paths := slices.Clone(*configFlag)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	if mode != modes.ModeProduction {
		// tests only see explicitly given files
		return configs.NewLoader(paths, schema)
	}

	filenames := []string{
		"gtscript.cue",
		".gtscript.cue",
	}

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, existing(workingDir, filenames)...)
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, existing(configDir, filenames)...)
	}

	// system wide dir
	paths = append(paths, existing("/etc", filenames)...)

	return configs.NewLoader(paths, schema)
}

func existing(dir string, filenames []string) (ret []string) {
	for _, filename := range filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			ret = append(ret, path)
		}
	}
	return
}
