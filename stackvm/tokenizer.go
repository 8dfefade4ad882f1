package stackvm

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"

	"github.com/reusee/gtscript/values"
)

// Tokenizer splits scripts into whitespace separated words, quoted strings and numbers.
type Tokenizer struct {
	source  *bufio.Reader
	name    string
	current *Token

	currPos values.Pos
	prevPos values.Pos
}

func NewTokenizer(name string, source io.Reader) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(source),
		name:   name,
		currPos: values.Pos{
			Source: name,
			Line:   1,
			Column: 1,
		},
	}
}

func (t *Tokenizer) readRune() (rune, error) {
	r, _, err := t.source.ReadRune()
	if err != nil {
		return 0, err
	}

	t.prevPos = t.currPos
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return r, nil
}

func (t *Tokenizer) unreadRune() {
	t.source.UnreadRune()
	t.currPos = t.prevPos
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.current == nil {
		var err error
		t.current, err = t.parseNext()
		if err != nil {
			return nil, err
		}
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	t.current = nil
}

func (t *Tokenizer) parseNext() (*Token, error) {
	t.skipWhitespace()
	startPos := t.currPos

	r, err := t.readRune()
	if err == io.EOF {
		return &Token{Kind: TokenEOF, Pos: startPos}, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case r == '\'' || r == '"':
		return t.parseString(r, startPos)
	case r == '$':
		word, err := t.readWord()
		if err != nil {
			return nil, err
		}
		if word == "" {
			return &Token{Kind: TokenInvalid, Text: "$", Pos: startPos}, nil
		}
		return &Token{Kind: TokenVariable, Text: word, Pos: startPos}, nil
	}

	t.unreadRune()
	word, err := t.readWord()
	if err != nil {
		return nil, err
	}

	switch {
	case word == "//" || strings.HasPrefix(word, "//") || strings.HasPrefix(word, "#"):
		t.skipLine()
		return t.parseNext()
	case word == "/*" || strings.HasPrefix(word, "/*"):
		if err := t.skipBlockComment(word); err != nil {
			return nil, err
		}
		return t.parseNext()
	}

	if kind, ok := numberKind(word); ok {
		return &Token{Kind: kind, Text: word, Pos: startPos}, nil
	}
	return &Token{Kind: TokenWord, Text: word, Pos: startPos}, nil
}

func (t *Tokenizer) skipWhitespace() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(r) {
			t.unreadRune()
			return
		}
	}
}

func (t *Tokenizer) skipLine() {
	for {
		r, err := t.readRune()
		if err != nil {
			return
		}
		if r == '\n' {
			return
		}
	}
}

func (t *Tokenizer) skipBlockComment(opening string) error {
	if len(opening) > 3 && strings.HasSuffix(opening, "*/") {
		return nil
	}
	var prev rune
	for {
		r, err := t.readRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if prev == '*' && r == '/' {
			return nil
		}
		prev = r
	}
}

func (t *Tokenizer) readWord() (string, error) {
	var buf bytes.Buffer
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if unicode.IsSpace(r) {
			t.unreadRune()
			break
		}
		buf.WriteRune(r)
	}
	return buf.String(), nil
}

func numberKind(word string) (TokenKind, bool) {
	s := strings.TrimLeft(word, "+-")
	if len(word)-len(s) > 1 || s == "" || !unicode.IsDigit(rune(s[0])) {
		return TokenInvalid, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return TokenInt, len(s) > 2
	}
	isReal := false
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
		case r == '.' || r == 'e' || r == 'E':
			isReal = true
		case (r == '-' || r == '+') && i > 0 && (s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return TokenInvalid, false
		}
	}
	if isReal {
		return TokenReal, true
	}
	return TokenInt, true
}

func (t *Tokenizer) parseString(quote rune, startPos values.Pos) (*Token, error) {
	var buf bytes.Buffer
	for {
		r, err := t.readRune()
		if err == io.EOF {
			// unmatched quote
			return &Token{Kind: TokenInvalid, Text: buf.String(), Pos: startPos}, nil
		}
		if err != nil {
			return nil, err
		}
		if r == quote {
			break
		}

		if r == '\\' {
			next, err := t.readRune()
			if err == io.EOF {
				buf.WriteRune(r)
				break
			}
			if err != nil {
				return nil, err
			}
			switch next {
			case 'n':
				buf.WriteRune('\n')
			case 'r':
				buf.WriteRune('\r')
			case 't':
				buf.WriteRune('\t')
			case '\\':
				buf.WriteRune('\\')
			case '"':
				buf.WriteRune('"')
			case '\'':
				buf.WriteRune('\'')
			default:
				buf.WriteRune('\\')
				buf.WriteRune(next)
			}
		} else {
			buf.WriteRune(r)
		}
	}
	return &Token{
		Kind: TokenString,
		Text: buf.String(),
		Pos:  startPos,
	}, nil
}
