package values

import (
	"cmp"
	"fmt"
	"math"
)

// Promote applies the numeric tower: both operands stay integers unless either is real.
func Promote(a, b Value) (ai, bi int64, af, bf float64, isReal bool, ok bool) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			return int64(a), int64(b), 0, 0, false, true
		case Real:
			return 0, 0, float64(a), float64(b), true, true
		}
	case Real:
		switch b := b.(type) {
		case Int:
			return 0, 0, float64(a), float64(b), true, true
		case Real:
			return 0, 0, float64(a), float64(b), true, true
		}
	}
	return
}

// Equal compares two values. Mismatched kinds fail with ErrTypeMismatch, except numbers.
func Equal(a, b Value) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, kindOf(a), kindOf(b))
	}
	if ai, bi, af, bf, isReal, ok := Promote(a, b); ok {
		if isReal {
			return af == bf, nil
		}
		return ai == bi, nil
	}
	if a.Kind() != b.Kind() {
		return false, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, a.Kind(), b.Kind())
	}
	switch a := a.(type) {
	case Bool:
		return a == b.(Bool), nil
	case Text:
		return a == b.(Text), nil
	case *List:
		other := b.(*List)
		if len(a.Items) != len(other.Items) {
			return false, nil
		}
		for i, item := range a.Items {
			eq, err := Equal(item, other.Items[i])
			if err != nil || !eq {
				return false, nil
			}
		}
		return true, nil
	case *Map:
		other := b.(*Map)
		if a.Len() != other.Len() {
			return false, nil
		}
		for k, v := range a.All() {
			w, ok := other.Get(k)
			if !ok {
				return false, nil
			}
			eq, err := Equal(v, w)
			if err != nil || !eq {
				return false, nil
			}
		}
		return true, nil
	case Vector:
		return a.Equal(b.(Vector)), nil
	case Matrix:
		return a.Equal(b.(Matrix)), nil
	}
	return a.String() == b.String(), nil
}

// Compare orders numbers and texts.
func Compare(a, b Value) (int, error) {
	if ai, bi, af, bf, isReal, ok := Promote(a, b); ok {
		if isReal {
			if math.IsNaN(af) || math.IsNaN(bf) {
				return 0, fmt.Errorf("%w: NaN is not ordered", ErrTypeMismatch)
			}
			return cmp.Compare(af, bf), nil
		}
		return cmp.Compare(ai, bi), nil
	}
	if at, ok := a.(Text); ok {
		if bt, ok := b.(Text); ok {
			return cmp.Compare(at, bt), nil
		}
	}
	if ab, ok := a.(Bool); ok {
		if bb, ok := b.(Bool); ok {
			switch {
			case ab == bb:
				return 0, nil
			case !bool(ab):
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot compare %s and %s", ErrTypeMismatch, kindOf(a), kindOf(b))
}
