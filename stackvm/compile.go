package stackvm

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/reusee/gtscript/values"
)

const (
	macroOpen  = "<%"
	macroClose = "%>"
)

// Compile reads a whole script into a macro. Nested <% %> blocks become macro literals.
func Compile(name string, source io.Reader) (*values.Macro, error) {
	tokenizer := NewTokenizer(name, source)
	macro, closed, err := compileMacro(tokenizer)
	if err != nil {
		return nil, err
	}
	if closed != nil {
		return nil, &OpError{
			Op:  macroClose,
			Pos: closed.Pos,
			Err: fmt.Errorf("%w: unexpected %s", ErrSyntax, macroClose),
		}
	}
	return macro, nil
}

func CompileString(name string, src string) (*values.Macro, error) {
	return Compile(name, strings.NewReader(src))
}

// compileMacro returns the closing token when it stops on %>.
func compileMacro(tokenizer *Tokenizer) (*values.Macro, *Token, error) {
	macro := new(values.Macro)
	for {
		token, err := tokenizer.Current()
		if err != nil {
			return nil, nil, err
		}
		tokenizer.Consume()

		switch token.Kind {

		case TokenEOF:
			return macro, nil, nil

		case TokenInvalid:
			return nil, nil, &OpError{
				Op:  token.Text,
				Pos: token.Pos,
				Err: fmt.Errorf("%w: invalid token %q", ErrSyntax, token.Text),
			}

		case TokenString:
			macro.Statements = append(macro.Statements, values.Statement{
				Literal: values.Text(token.Text),
				Pos:     token.Pos,
			})

		case TokenInt:
			i, err := strconv.ParseInt(token.Text, 0, 64)
			if err != nil {
				return nil, nil, &OpError{Op: token.Text, Pos: token.Pos, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
			}
			macro.Statements = append(macro.Statements, values.Statement{
				Literal: values.Int(i),
				Pos:     token.Pos,
			})

		case TokenReal:
			f, err := strconv.ParseFloat(token.Text, 64)
			if err != nil {
				return nil, nil, &OpError{Op: token.Text, Pos: token.Pos, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
			}
			macro.Statements = append(macro.Statements, values.Statement{
				Literal: values.Real(f),
				Pos:     token.Pos,
			})

		case TokenVariable:
			macro.Statements = append(macro.Statements,
				values.Statement{
					Literal: values.Text(token.Text),
					Pos:     token.Pos,
				},
				values.Statement{
					Op:  "LOAD",
					Pos: token.Pos,
				},
			)

		case TokenWord:
			switch token.Text {
			case macroOpen:
				inner, closed, err := compileMacro(tokenizer)
				if err != nil {
					return nil, nil, err
				}
				if closed == nil {
					return nil, nil, &OpError{
						Op:  macroOpen,
						Pos: token.Pos,
						Err: fmt.Errorf("%w: %w: unterminated macro", ErrSyntax, ErrIncomplete),
					}
				}
				macro.Statements = append(macro.Statements, values.Statement{
					Literal: inner,
					Pos:     token.Pos,
				})
			case macroClose:
				return macro, token, nil
			default:
				macro.Statements = append(macro.Statements, wordStatement(token))
			}

		}
	}
}

func wordStatement(token *Token) values.Statement {
	stmt := values.Statement{
		Pos: token.Pos,
	}
	switch token.Text {
	case "true":
		stmt.Literal = values.Bool(true)
	case "false":
		stmt.Literal = values.Bool(false)
	case "NaN":
		stmt.Literal = values.Real(math.NaN())
	case "Infinity", "+Infinity":
		stmt.Literal = values.Real(math.Inf(1))
	case "-Infinity":
		stmt.Literal = values.Real(math.Inf(-1))
	default:
		stmt.Op = token.Text
	}
	return stmt
}
