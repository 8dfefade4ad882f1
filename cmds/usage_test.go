package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("run", Sub(map[string]*Command{
		"file": Func(func(path string) {
		}).Desc("run a script file"),
		"limits": Sub(map[string]*Command{
			"hard": Func(func(n int64) {}).Desc("hard operation limit"),
			"soft": Func(func(n *int64) {}),
		}).Desc("LIMITS"),
	}).Desc("run scripts"))

	buf := new(bytes.Buffer)
	executor.PrintUsage(buf)
	out := buf.String()
	for _, want := range []string{
		"-h, help, -help, --help\tprint this usage",
		"run\trun scripts",
		"  file <string>\trun a script file",
		"    hard <int64>\thard operation limit",
		"    soft [int64]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	if strings.Count(out, "print this usage") != 1 {
		t.Fatalf("aliases printed twice:\n%s", out)
	}
}
