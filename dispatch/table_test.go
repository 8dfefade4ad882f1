package dispatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/gtscript/values"
)

func mustMatrix(t *testing.T, rows ...[]float64) values.Matrix {
	t.Helper()
	m, err := values.NewMatrix(rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func mustVector(t *testing.T, data ...float64) values.Vector {
	t.Helper()
	v, err := values.NewVector(data)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestMulRuleOrder(t *testing.T) {
	m := mustMatrix(t, []float64{1, 2}, []float64{3, 4})
	v := mustVector(t, 1, 1)

	tests := []struct {
		args []values.Value
		rule int
		want string
	}{
		{[]values.Value{values.Int(3), values.Int(4)}, 0, "12"},
		{[]values.Value{values.Int(3), values.Real(0.5)}, 0, "1.5"},
		{[]values.Value{values.Real(2), values.Int(4)}, 0, "8.0"},
		{[]values.Value{m, m}, 1, "[ [ 7.0 10.0 ] [ 15.0 22.0 ] ] ->MAT"},
		{[]values.Value{m, values.Int(2)}, 2, "[ [ 2.0 4.0 ] [ 6.0 8.0 ] ] ->MAT"},
		{[]values.Value{values.Int(2), m}, 3, "[ [ 2.0 4.0 ] [ 6.0 8.0 ] ] ->MAT"},
		{[]values.Value{v, m}, 4, "[ 4.0 6.0 ] ->V"},
		{[]values.Value{m, v}, 5, "[ 3.0 7.0 ] ->V"},
		{[]values.Value{v, values.Real(0.5)}, 6, "[ 0.5 0.5 ] ->V"},
		{[]values.Value{values.Int(3), v}, 7, "[ 3.0 3.0 ] ->V"},
	}

	for _, test := range tests {
		if got := Mul.Select(test.args); got != test.rule {
			t.Fatalf("%v: got rule %d, want %d", test.args, got, test.rule)
		}
		// repeated dispatch is deterministic
		for range 3 {
			res, err := Mul.Dispatch(test.args...)
			if err != nil {
				t.Fatal(err)
			}
			if res.String() != test.want {
				t.Fatalf("%v: got %s, want %s", test.args, res, test.want)
			}
		}
	}
}

func TestUnsupported(t *testing.T) {
	_, err := Mul.Dispatch(values.Text("a"), values.Int(1))
	if !errors.Is(err, ErrUnsupportedOperandTypes) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "*") {
		t.Fatalf("error should name the operator: %v", err)
	}
}

func TestOverlappingPatterns(t *testing.T) {
	table := &Table{
		Op: "test",
		Rules: []Rule{
			{Pattern{Integer, Integer}, func([]values.Value) (values.Value, error) {
				return values.Text("ints"), nil
			}},
			{Pattern{Number, Number}, func([]values.Value) (values.Value, error) {
				return values.Text("numbers"), nil
			}},
			{Pattern{Any, Any}, func([]values.Value) (values.Value, error) {
				return values.Text("any"), nil
			}},
		},
	}
	tests := []struct {
		a, b values.Value
		want values.Value
	}{
		{values.Int(1), values.Int(2), values.Text("ints")},
		{values.Int(1), values.Real(2), values.Text("numbers")},
		{values.Text("x"), values.Real(2), values.Text("any")},
	}
	for _, test := range tests {
		got, err := table.Dispatch(test.a, test.b)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Fatalf("got %v, want %v", got, test.want)
		}
	}
	if table.Arity() != 2 {
		t.Fatal()
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		table *Table
		a, b  values.Value
		want  string
	}{
		{Add, values.Int(1), values.Int(2), "3"},
		{Add, values.Text("a"), values.Text("b"), "'ab'"},
		{Add, values.NewList(values.Int(1)), values.Int(2), "[ 1 2 ]"},
		{Sub, values.Real(1), values.Int(2), "-1.0"},
		{Div, values.Int(7), values.Int(2), "3"},
		{Div, values.Int(7), values.Real(2), "3.5"},
		{Mod, values.Int(7), values.Int(4), "3"},
		{Pow, values.Int(2), values.Int(10), "1024"},
		{Pow, values.Int(2), values.Real(0.5), "1.4142135623730951"},
		{Lt, values.Int(1), values.Real(1.5), "true"},
		{Ge, values.Text("a"), values.Text("b"), "false"},
		{And, values.Bool(true), values.Bool(false), "false"},
		{Or, values.Bool(true), values.Bool(false), "true"},
	}
	for _, test := range tests {
		got, err := test.table.Dispatch(test.a, test.b)
		if err != nil {
			t.Fatalf("%s %v %v: %v", test.table.Op, test.a, test.b, err)
		}
		if got.String() != test.want {
			t.Fatalf("%s %v %v: got %s", test.table.Op, test.a, test.b, got)
		}
	}

	if _, err := Div.Dispatch(values.Int(1), values.Int(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("got %v", err)
	}
	if _, err := Lt.Dispatch(values.Int(1), values.Text("a")); !errors.Is(err, ErrUnsupportedOperandTypes) {
		t.Fatalf("got %v", err)
	}
}
