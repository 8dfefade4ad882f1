package values

import (
	"math"
	"strconv"
	"strings"
)

// Value is anything that can live on the stack.
// The set of kinds is closed; types outside this package (series, reducers) report one of the
// predefined kinds.
type Value interface {
	Kind() Kind
	String() string
}

type Int int64

type Real float64

type Bool bool

type Text string

var (
	_ Value = Int(0)
	_ Value = Real(0)
	_ Value = Bool(false)
	_ Value = Text("")
)

func (Int) Kind() Kind  { return KindInt }
func (Real) Kind() Kind { return KindReal }
func (Bool) Kind() Kind { return KindBool }
func (Text) Kind() Kind { return KindText }

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (r Real) String() string {
	f := float64(r)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func (t Text) String() string {
	return "'" + textEscaper.Replace(string(t)) + "'"
}

// AsInt converts integer-valued numbers.
func AsInt(v Value) (int64, bool) {
	switch v := v.(type) {
	case Int:
		return int64(v), true
	case Real:
		f := float64(v)
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func AsFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// Truthy follows the boolean coercion used by conditionals.
func Truthy(v Value) (bool, error) {
	switch v := v.(type) {
	case Bool:
		return bool(v), nil
	case Int:
		return v != 0, nil
	case Real:
		return v != 0 && !math.IsNaN(float64(v)), nil
	case Text:
		return v != "", nil
	}
	return false, mismatch("boolean", v)
}
