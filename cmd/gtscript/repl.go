package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/gtscript/stackvm"
)

const (
	prompt         = "> "
	continuePrompt = ". "
)

// runREPL executes lines on one machine, so the stack and variables carry over. Lines are buffered while
// a macro is left open.
func runREPL(ctx context.Context, m *stackvm.Machine) error {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".gtscript_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var pending strings.Builder
	for n := 1; ; n++ {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending.WriteString(line)
		pending.WriteString("\n")

		name := fmt.Sprintf("repl#%d", n)
		src := pending.String()
		macro, err := stackvm.CompileString(name, src)
		if errors.Is(err, stackvm.ErrIncomplete) {
			rl.SetPrompt(continuePrompt)
			continue
		}
		pending.Reset()
		rl.SetPrompt(prompt)
		if err == nil {
			err = m.ExecuteMacro(ctx, name, macro)
		}
		if err != nil {
			fmt.Fprint(os.Stderr, stackvm.NewSource(name, src).Annotate(err))
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, m.Trace())
		}
		fmt.Print(m.Snapshot())
	}
}
