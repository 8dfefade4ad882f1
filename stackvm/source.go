package stackvm

import (
	"errors"
	"fmt"
	"strings"
)

type Source struct {
	Name    string
	Content string
	Lines   []string
}

func NewSource(name string, content string) *Source {
	return &Source{
		Name:    name,
		Content: content,
		Lines:   strings.Split(content, "\n"),
	}
}

// Annotate renders err with the offending source line and a caret under the failing operator.
func (s *Source) Annotate(err error) string {
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Pos.Source != s.Name {
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	idx := opErr.Pos.Line - 1
	if idx < 0 || idx >= len(s.Lines) {
		return sb.String()
	}
	line := s.Lines[idx]
	sb.WriteString(line)
	sb.WriteString("\n")

	col := opErr.Pos.Column - 1
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteString("\t")
		} else {
			sb.WriteString(strings.Repeat(" ", runeWidth(r)))
		}
	}
	sb.WriteString("^\n")
	return sb.String()
}

func (s *Source) String() string {
	return fmt.Sprintf("%s (%d lines)", s.Name, len(s.Lines))
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
