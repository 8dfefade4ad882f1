package stackvm

import (
	"errors"
	"fmt"

	"github.com/reusee/gtscript/values"
)

var (
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrArgumentShape    = errors.New("invalid arguments")
	ErrOperationLimit   = errors.New("operation limit exceeded")
	ErrRecursionLimit   = errors.New("recursion limit exceeded")
	ErrUnknownOperator  = errors.New("unknown operator")
	ErrAssertion        = errors.New("assertion failed")
	ErrUnbalancedMarker = errors.New("unbalanced marker")
	ErrSyntax           = errors.New("syntax error")
	ErrIncomplete       = errors.New("incomplete input")
)

// OpError carries the name and position of the failing operator.
type OpError struct {
	Op  string
	Pos values.Pos
	Err error
}

func (e *OpError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v at %s:%d:%d", e.Op, e.Err, e.Pos.Source, e.Pos.Line, e.Pos.Column)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func withOp(op string, pos values.Pos, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{
		Op:  op,
		Pos: pos,
		Err: err,
	}
}

func underflow(want, got int) error {
	return fmt.Errorf("%w: need %d operands, got %d", ErrStackUnderflow, want, got)
}
