package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/gtscript/cmds"
	"github.com/reusee/gtscript/engines"
	"github.com/reusee/gtscript/logs"
	"github.com/reusee/gtscript/modes"
	"github.com/reusee/gtscript/stackvm"
	"golang.org/x/term"
)

var (
	wrap = e5.Wrap.With(e5.WrapStacktrace)

	runFiles      = cmds.Collect[string]("run", "run a script file")
	evalSources   = cmds.Collect[string]("eval", "run a script given as argument")
	replFlag      = cmds.Switch("repl", "start the interactive loop after running scripts")
	listOperators = cmds.Switch("operators", "list operator names")
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ctx := context.Background()

	scope := dscope.New(
		new(engines.Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		execute engines.Execute,
		newMachine engines.NewMachine,
		registry *stackvm.Registry,
		logger logs.Logger,
	) {

		if *listOperators {
			for _, name := range registry.Names() {
				fmt.Println(name)
			}
			return
		}

		ran := false
		for _, path := range *runFiles {
			content, err := os.ReadFile(path)
			if err != nil {
				exit(wrap(err))
			}
			runScript(ctx, execute, path, string(content))
			ran = true
		}

		for i, src := range *evalSources {
			runScript(ctx, execute, fmt.Sprintf("eval#%d", i), src)
			ran = true
		}

		if !ran && !term.IsTerminal(int(os.Stdin.Fd())) {
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				exit(wrap(err))
			}
			runScript(ctx, execute, "<stdin>", string(content))
			ran = true
		}

		if *replFlag || !ran {
			logger.Debug("repl start")
			if err := runREPL(ctx, newMachine()); err != nil {
				exit(wrap(err))
			}
		}

	})

}

func runScript(ctx context.Context, execute engines.Execute, name string, src string) {
	m, err := execute(ctx, name, src)
	fmt.Print(m.Snapshot())
	if err != nil {
		fmt.Fprint(os.Stderr, stackvm.NewSource(name, src).Annotate(err))
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, m.Trace())
		os.Exit(1)
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
