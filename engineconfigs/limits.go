package engineconfigs

import (
	"github.com/reusee/gtscript/cmds"
	"github.com/reusee/gtscript/configs"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/vars"
)

const (
	DefaultMaxOps     = 1_000_000
	DefaultMaxOpsHard = 10_000_000
	DefaultMaxDepth   = 256
)

type MaxOps int64

var _ configs.Configurable = MaxOps(0)

func (MaxOps) ConfigPath() string {
	return "max_ops"
}

type MaxOpsHard int64

var _ configs.Configurable = MaxOpsHard(0)

func (MaxOpsHard) ConfigPath() string {
	return "max_ops_hard"
}

type MaxDepth int

var _ configs.Configurable = MaxDepth(0)

func (MaxDepth) ConfigPath() string {
	return "max_depth"
}

var (
	maxOpsFlag     = cmds.Var[MaxOps]("-max-ops", "soft operation limit, negative to disable")
	maxOpsHardFlag = cmds.Var[MaxOpsHard]("-max-ops-hard", "hard operation limit, negative to disable")
	maxDepthFlag   = cmds.Var[MaxDepth]("-max-depth", "macro nesting limit, negative to disable")
)

type setting interface {
	~int | ~int64
	configs.Configurable
}

// resolve picks the flag, then the config files, then the default. A negative setting disables the limit.
func resolve[T setting](loader configs.Loader, flag T, def T) T {
	ret := vars.FirstNonZero(
		flag,
		configs.Lookup[T](loader),
		def,
	)
	if ret < 0 {
		return 0
	}
	return ret
}

func (Module) MaxOps(
	loader configs.Loader,
) MaxOps {
	return resolve(loader, *maxOpsFlag, DefaultMaxOps)
}

func (Module) MaxOpsHard(
	loader configs.Loader,
) MaxOpsHard {
	return resolve(loader, *maxOpsHardFlag, DefaultMaxOpsHard)
}

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	return resolve(loader, *maxDepthFlag, DefaultMaxDepth)
}

func (Module) Limits(
	maxOps MaxOps,
	maxOpsHard MaxOpsHard,
	maxDepth MaxDepth,
) stackvm.Limits {
	return stackvm.Limits{
		MaxOps:     int64(maxOps),
		MaxOpsHard: int64(maxOpsHard),
		MaxDepth:   int(maxDepth),
	}
}
