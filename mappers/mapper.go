// Package mappers reduces planned windows to output readings.
package mappers

import (
	"errors"
	"log/slog"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/values"
	"github.com/reusee/gtscript/windows"
)

var (
	ErrInvalidResult = errors.New("invalid mapper result")
	ErrNotNumeric    = errors.New("non numeric value")
)

// Caller evaluates macros on behalf of macro mappers.
type Caller interface {
	Push(vs ...values.Value)
	Pop() (values.Value, error)
	Depth() int
	Exec(macro *values.Macro) error
	Logger() *slog.Logger
	// Budget reports the operator invocations left before the hard limit.
	Budget() (left int64, limited bool)
}

// Mapper reduces one window to zero or more readings.
type Mapper interface {
	values.Value
	Name() string
	Map(caller Caller, w windows.Window) ([]gts.Reading, error)
}

// Func is a builtin mapper.
type Func struct {
	name string
	fn   func(w windows.Window) ([]gts.Reading, error)
}

var _ Mapper = Func{}

func NewFunc(name string, fn func(w windows.Window) ([]gts.Reading, error)) Func {
	return Func{
		name: name,
		fn:   fn,
	}
}

func (Func) Kind() values.Kind {
	return values.KindFunction
}

func (f Func) Name() string {
	return f.name
}

func (f Func) String() string {
	return f.name
}

func (f Func) Map(_ Caller, w windows.Window) ([]gts.Reading, error) {
	return f.fn(w)
}
