package values

import (
	"errors"
	"fmt"
)

var ErrTypeMismatch = errors.New("type mismatch")

func mismatch(want string, got Value) error {
	return fmt.Errorf("%w: expecting %s, got %s", ErrTypeMismatch, want, kindOf(got))
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}
