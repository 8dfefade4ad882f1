package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestNewSpan(t *testing.T) {
	level.Set(slog.LevelDebug)
	defer level.Set(slog.LevelInfo)

	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
	) {
		ctx := context.Background()

		ctx1, span1 := newSpan(ctx, "outer.gts")
		_, span2 := newSpan(ctx1, "inner")

		var lines []string
		for line := range strings.SplitSeq(buf.String(), "\n") {
			if strings.Contains(line, "new span") {
				lines = append(lines, line)
			}
		}
		if len(lines) != 2 {
			t.Fatalf("got %q", buf.String())
		}
		if !strings.Contains(lines[0], "span="+string(span1)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[0], "name=outer.gts") {
			t.Fatalf("got %v", lines[0])
		}
		if strings.Contains(lines[0], "parent=") {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "span="+string(span2)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[1], "parent="+string(span1)) {
			t.Fatalf("got %v", lines[1])
		}
	})
}
