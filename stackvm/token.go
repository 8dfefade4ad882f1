package stackvm

import "github.com/reusee/gtscript/values"

type Token struct {
	Kind TokenKind
	Text string
	Pos  values.Pos
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenEOF
	TokenWord
	TokenString
	TokenInt
	TokenReal
	TokenVariable
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenWord:
		return "word"
	case TokenString:
		return "string"
	case TokenInt:
		return "integer"
	case TokenReal:
		return "real"
	case TokenVariable:
		return "variable"
	}
	return "invalid"
}
