package engineconfigs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/gtscript/logs"
	"github.com/reusee/gtscript/modes"
	"github.com/reusee/gtscript/stackvm"
)

func TestDefaultLimits(t *testing.T) {
	dscope.New(
		new(Module),
		new(logs.Module),
		modes.ForTest(t),
	).Call(func(
		limits stackvm.Limits,
	) {
		if limits != (stackvm.Limits{
			MaxOps:     DefaultMaxOps,
			MaxOpsHard: DefaultMaxOpsHard,
			MaxDepth:   DefaultMaxDepth,
		}) {
			t.Fatalf("got %+v", limits)
		}
	})
}

func TestConfigFileLimits(t *testing.T) {
	*configFlag = []string{"testdata/limits.cue"}
	defer func() {
		*configFlag = nil
	}()

	dscope.New(
		new(Module),
		new(logs.Module),
		modes.ForTest(t),
	).Call(func(
		maxOps MaxOps,
		maxOpsHard MaxOpsHard,
		maxDepth MaxDepth,
	) {
		if maxOps != 500 {
			t.Fatalf("got %v", maxOps)
		}
		if maxOpsHard != DefaultMaxOpsHard {
			t.Fatalf("got %v", maxOpsHard)
		}
		// negative disables
		if maxDepth != 0 {
			t.Fatalf("got %v", maxDepth)
		}
	})
}

func TestFlagOverridesConfig(t *testing.T) {
	*configFlag = []string{"testdata/limits.cue"}
	*maxOpsFlag = 42
	defer func() {
		*configFlag = nil
		*maxOpsFlag = 0
	}()

	dscope.New(
		new(Module),
		new(logs.Module),
		modes.ForTest(t),
	).Call(func(
		maxOps MaxOps,
	) {
		if maxOps != 42 {
			t.Fatalf("got %v", maxOps)
		}
	})
}

func TestInvalidConfig(t *testing.T) {
	*configFlag = []string{"testdata/bad.cue"}
	defer func() {
		*configFlag = nil
	}()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("should panic")
			}
		}()
		dscope.New(
			new(Module),
			new(logs.Module),
			modes.ForTest(t),
		).Call(func(
			maxOps MaxOps,
		) {
		})
	}()
}
