package values

import (
	"errors"
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Real(1), true},
		{Real(1.5), Int(1), false},
		{Text("a"), Text("a"), true},
		{Bool(true), Bool(false), false},
		{NewList(Int(1), Text("x")), NewList(Real(1), Text("x")), true},
		{NewList(Int(1)), NewList(Int(1), Int(2)), false},
	}
	for _, test := range tests {
		got, err := Equal(test.a, test.b)
		if err != nil {
			t.Fatalf("%v == %v: %v", test.a, test.b, err)
		}
		if got != test.want {
			t.Fatalf("%v == %v: got %v", test.a, test.b, got)
		}
	}
}

func TestEqualMismatch(t *testing.T) {
	_, err := Equal(Int(1), Text("1"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
}

func TestCompare(t *testing.T) {
	if c, err := Compare(Int(1), Real(1.5)); err != nil || c != -1 {
		t.Fatalf("got %v %v", c, err)
	}
	if c, err := Compare(Text("b"), Text("a")); err != nil || c != 1 {
		t.Fatalf("got %v %v", c, err)
	}
	if _, err := Compare(Real(math.NaN()), Int(1)); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
	if _, err := Compare(NewList(), Int(1)); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
	for _, c := range []struct {
		a, b Bool
		want int
	}{
		{false, true, -1},
		{true, false, 1},
		{true, true, 0},
		{false, false, 0},
	} {
		if got, err := Compare(c.a, c.b); err != nil || got != c.want {
			t.Fatalf("%v %v: got %v %v", c.a, c.b, got, err)
		}
	}
}

func TestString(t *testing.T) {
	m := NewMap()
	m.Put("b", Int(2))
	m.Put("a", Real(1))
	m.Put("b", Int(3))
	tests := []struct {
		v    Value
		want string
	}{
		{Int(-3), "-3"},
		{Real(2), "2.0"},
		{Real(0.5), "0.5"},
		{Real(math.NaN()), "NaN"},
		{Text("it's"), `'it\'s'`},
		{NewList(Int(1), Bool(true)), "[ 1 true ]"},
		{NewList(), "[ ]"},
		{m, "{ 'b' 3 'a' 1.0 }"},
	}
	for _, test := range tests {
		if got := test.v.String(); got != test.want {
			t.Fatalf("got %s, want %s", got, test.want)
		}
	}
}

func TestMatrix(t *testing.T) {
	a, err := NewMatrix([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMatrix([][]float64{{0, 1}, {1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	ab, err := a.Mul(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := ab.String(); got != "[ [ 2.0 1.0 ] [ 4.0 3.0 ] ] ->MAT" {
		t.Fatalf("got %s", got)
	}
	ba, err := b.Mul(a)
	if err != nil {
		t.Fatal(err)
	}
	if ab.Equal(ba) {
		t.Fatal("matrix product should not commute here")
	}

	v, err := NewVector([]float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	mv, err := a.MulVector(v)
	if err != nil {
		t.Fatal(err)
	}
	if got := mv.String(); got != "[ 3.0 7.0 ] ->V" {
		t.Fatalf("got %s", got)
	}
	vm, err := v.MulMatrix(a)
	if err != nil {
		t.Fatal(err)
	}
	if got := vm.String(); got != "[ 4.0 6.0 ] ->V" {
		t.Fatalf("got %s", got)
	}

	if _, err := NewMatrix([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v", err)
	}
	three, _ := NewVector([]float64{1, 2, 3})
	if _, err := a.MulVector(three); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v", err)
	}
}
