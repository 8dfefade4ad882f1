package dispatch

import (
	"errors"
	"math"
	"slices"

	"github.com/reusee/gtscript/values"
)

var ErrDivisionByZero = errors.New("integer division by zero")

// Tables are process-wide and never modified after initialization.
var (
	Mul = &Table{
		Op: "*",
		Rules: []Rule{
			{Pattern{Number, Number}, numeric(
				func(a, b int64) (values.Value, error) { return values.Int(a * b), nil },
				func(a, b float64) values.Value { return values.Real(a * b) },
			)},
			{Pattern{Matrix, Matrix}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Matrix).Mul(args[1].(values.Matrix))
			}},
			{Pattern{Matrix, Number}, func(args []values.Value) (values.Value, error) {
				f, _ := values.AsFloat(args[1])
				return args[0].(values.Matrix).Scale(f), nil
			}},
			{Pattern{Number, Matrix}, func(args []values.Value) (values.Value, error) {
				f, _ := values.AsFloat(args[0])
				return args[1].(values.Matrix).Scale(f), nil
			}},
			{Pattern{Vector, Matrix}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Vector).MulMatrix(args[1].(values.Matrix))
			}},
			{Pattern{Matrix, Vector}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Matrix).MulVector(args[1].(values.Vector))
			}},
			{Pattern{Vector, Number}, func(args []values.Value) (values.Value, error) {
				f, _ := values.AsFloat(args[1])
				return args[0].(values.Vector).Scale(f), nil
			}},
			{Pattern{Number, Vector}, func(args []values.Value) (values.Value, error) {
				f, _ := values.AsFloat(args[0])
				return args[1].(values.Vector).Scale(f), nil
			}},
		},
	}

	Add = &Table{
		Op: "+",
		Rules: []Rule{
			{Pattern{Number, Number}, numeric(
				func(a, b int64) (values.Value, error) { return values.Int(a + b), nil },
				func(a, b float64) values.Value { return values.Real(a + b) },
			)},
			{Pattern{Text, Text}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Text) + args[1].(values.Text), nil
			}},
			{Pattern{List, Any}, func(args []values.Value) (values.Value, error) {
				list := args[0].(*values.List)
				return values.NewList(append(slices.Clone(list.Items), args[1])...), nil
			}},
			{Pattern{Vector, Vector}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Vector).Add(args[1].(values.Vector))
			}},
			{Pattern{Matrix, Matrix}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Matrix).Add(args[1].(values.Matrix))
			}},
		},
	}

	Sub = &Table{
		Op: "-",
		Rules: []Rule{
			{Pattern{Number, Number}, numeric(
				func(a, b int64) (values.Value, error) { return values.Int(a - b), nil },
				func(a, b float64) values.Value { return values.Real(a - b) },
			)},
			{Pattern{Vector, Vector}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Vector).Add(args[1].(values.Vector).Scale(-1))
			}},
			{Pattern{Matrix, Matrix}, func(args []values.Value) (values.Value, error) {
				return args[0].(values.Matrix).Add(args[1].(values.Matrix).Scale(-1))
			}},
		},
	}

	Div = &Table{
		Op: "/",
		Rules: []Rule{
			{Pattern{Number, Number}, numeric(
				func(a, b int64) (values.Value, error) {
					if b == 0 {
						return nil, ErrDivisionByZero
					}
					return values.Int(a / b), nil
				},
				func(a, b float64) values.Value { return values.Real(a / b) },
			)},
			{Pattern{Vector, Number}, func(args []values.Value) (values.Value, error) {
				f, _ := values.AsFloat(args[1])
				return args[0].(values.Vector).Scale(1 / f), nil
			}},
			{Pattern{Matrix, Number}, func(args []values.Value) (values.Value, error) {
				f, _ := values.AsFloat(args[1])
				return args[0].(values.Matrix).Scale(1 / f), nil
			}},
		},
	}

	Mod = &Table{
		Op: "%",
		Rules: []Rule{
			{Pattern{Number, Number}, numeric(
				func(a, b int64) (values.Value, error) {
					if b == 0 {
						return nil, ErrDivisionByZero
					}
					return values.Int(a % b), nil
				},
				func(a, b float64) values.Value { return values.Real(math.Mod(a, b)) },
			)},
		},
	}

	Pow = &Table{
		Op: "**",
		Rules: []Rule{
			{Pattern{Integer, Integer}, func(args []values.Value) (values.Value, error) {
				base, exp := int64(args[0].(values.Int)), int64(args[1].(values.Int))
				if exp < 0 {
					return values.Real(math.Pow(float64(base), float64(exp))), nil
				}
				ret := int64(1)
				for exp > 0 {
					if exp&1 == 1 {
						ret *= base
					}
					base *= base
					exp >>= 1
				}
				return values.Int(ret), nil
			}},
			{Pattern{Number, Number}, func(args []values.Value) (values.Value, error) {
				a, _ := values.AsFloat(args[0])
				b, _ := values.AsFloat(args[1])
				return values.Real(math.Pow(a, b)), nil
			}},
		},
	}

	Lt = comparison("<", func(c int) bool { return c < 0 })
	Gt = comparison(">", func(c int) bool { return c > 0 })
	Le = comparison("<=", func(c int) bool { return c <= 0 })
	Ge = comparison(">=", func(c int) bool { return c >= 0 })

	And = logical("&&", func(a, b bool) bool { return a && b })
	Or  = logical("||", func(a, b bool) bool { return a || b })
)

func numeric(
	onInt func(a, b int64) (values.Value, error),
	onReal func(a, b float64) values.Value,
) Behavior {
	return func(args []values.Value) (values.Value, error) {
		ai, bi, af, bf, isReal, _ := values.Promote(args[0], args[1])
		if isReal {
			return onReal(af, bf), nil
		}
		return onInt(ai, bi)
	}
}

func comparison(op string, pred func(int) bool) *Table {
	behavior := func(args []values.Value) (values.Value, error) {
		c, err := values.Compare(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return values.Bool(pred(c)), nil
	}
	return &Table{
		Op: op,
		Rules: []Rule{
			{Pattern{Number, Number}, behavior},
			{Pattern{Text, Text}, behavior},
		},
	}
}

func logical(op string, fn func(a, b bool) bool) *Table {
	return &Table{
		Op: op,
		Rules: []Rule{
			{Pattern{Boolean, Boolean}, func(args []values.Value) (values.Value, error) {
				return values.Bool(fn(bool(args[0].(values.Bool)), bool(args[1].(values.Bool)))), nil
			}},
		},
	}
}
