package values

import (
	"strings"
)

type Pos struct {
	Source string
	Line   int
	Column int
}

// Statement is one step of a macro: either an operator call or a literal to push.
type Statement struct {
	Op      string
	Literal Value
	Pos     Pos
}

func (s Statement) String() string {
	if s.Op != "" {
		return s.Op
	}
	return s.Literal.String()
}

type Macro struct {
	Statements []Statement
}

var _ Value = new(Macro)

func (*Macro) Kind() Kind { return KindMacro }

func (m *Macro) String() string {
	var sb strings.Builder
	sb.WriteString("<%")
	for _, stmt := range m.Statements {
		sb.WriteString(" ")
		sb.WriteString(stmt.String())
	}
	sb.WriteString(" %>")
	return sb.String()
}
