package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModes(t *testing.T) {
	for _, c := range []struct {
		module  any
		mode    Mode
		str     string
		hasTest bool
	}{
		{ForProduction(), ModeProduction, "production", false},
		{ForTest(t), ModeDevelopment, "development", true},
	} {
		dscope.New(c.module).Call(func(
			mode Mode,
			testT *testing.T,
		) {
			if mode != c.mode {
				t.Fatalf("got %v", mode)
			}
			if mode.String() != c.str {
				t.Fatalf("got %s", mode)
			}
			if (testT != nil) != c.hasTest {
				t.Fatalf("got %v", testT)
			}
		})
	}
	if Mode(0).String() != "unknown" {
		t.Fatal()
	}
}
