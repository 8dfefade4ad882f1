package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.With("execution", "foo").Info("test", "hello", "world!")
		if !strings.Contains(buf.String(), "execution=foo") {
			t.Fatalf("got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "hello=world!") {
			t.Fatalf("got %q", buf.String())
		}
	})
}

func TestJournalKey(t *testing.T) {
	for _, c := range []struct {
		key, want string
	}{
		{"execution", "EXECUTION"},
		{"soft_limit", "SOFT_LIMIT"},
		{"logs.span", "LOGS_SPAN"},
		{"op-1", "OP_1"},
	} {
		if got := toJournalKey(c.key); got != c.want {
			t.Fatalf("%s: got %s", c.key, got)
		}
	}
}
