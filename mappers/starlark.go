package mappers

import (
	"fmt"
	"math"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
	"github.com/reusee/gtscript/windows"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// StarlarkMapper reduces windows with a starlark function named mapper.
//
// The function receives a dict with the keys tick, low, high, ticks, values, latitudes,
// longitudes and elevations, and returns None, a (tick, value) tuple or a list of tuples.
type StarlarkMapper struct {
	source string
	fn     starlark.Callable
}

var _ Mapper = new(StarlarkMapper)

// NewStarlarkMapper runs source once to define the mapper. Top level statements share the operation
// budget of caller.
func NewStarlarkMapper(caller Caller, name string, source string) (*StarlarkMapper, error) {
	thread := newThread(caller, name)
	globals, err := starlark.ExecFileOptions(fileOptions, thread, name, source, predeclared())
	if err != nil {
		return nil, budgetError(thread, err)
	}
	fn, ok := globals["mapper"].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%w: %s defines no mapper function", ErrInvalidResult, name)
	}
	return &StarlarkMapper{
		source: source,
		fn:     fn,
	}, nil
}

const (
	callerKey   = "caller"
	maxStepsKey = "max_steps"
)

// newThread bounds execution steps by the operations caller may still invoke, so a looping script is
// stopped by the same hard limit as a looping macro.
func newThread(caller Caller, name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			caller.Logger().Info(msg)
		},
	}
	thread.SetLocal(callerKey, caller)
	if left, limited := caller.Budget(); limited {
		steps := uint64(max(left, 1))
		thread.SetMaxExecutionSteps(steps)
		thread.SetLocal(maxStepsKey, steps)
	}
	return thread
}

func budgetError(thread *starlark.Thread, err error) error {
	steps, ok := thread.Local(maxStepsKey).(uint64)
	if ok && thread.ExecutionSteps() >= steps {
		return fmt.Errorf("%w: starlark mapper ran %d steps", stackvm.ErrOperationLimit, thread.ExecutionSteps())
	}
	return err
}

func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"log": starlark.NewBuiltin("log", func(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var msg string
			if err := starlark.UnpackPositionalArgs("log", args, kwargs, 1, &msg); err != nil {
				return nil, err
			}
			if caller, ok := thread.Local(callerKey).(Caller); ok {
				caller.Logger().Info(msg, "thread", thread.Name)
			}
			return starlark.None, nil
		}),
		"isnan": starlarkutil.MakeFunc("isnan", math.IsNaN),
		"sqrt":  starlarkutil.MakeFunc("sqrt", math.Sqrt),
		"abs":   starlarkutil.MakeFunc("abs", math.Abs),
	}
}

func (*StarlarkMapper) Kind() values.Kind {
	return values.KindFunction
}

func (*StarlarkMapper) Name() string {
	return "STARLARKMAPPER"
}

func (s *StarlarkMapper) String() string {
	return values.Text(s.source).String() + " STARLARKMAPPER"
}

func (s *StarlarkMapper) Map(caller Caller, w windows.Window) ([]gts.Reading, error) {
	thread := newThread(caller, "mapper")
	ret, err := starlark.Call(thread, s.fn, starlark.Tuple{starlarkWindow(w)}, nil)
	if err != nil {
		return nil, budgetError(thread, err)
	}
	return fromStarlarkResult(ret)
}

func starlarkWindow(w windows.Window) starlark.Value {
	n := len(w.Candidates)
	ticks := make([]starlark.Value, n)
	vs := make([]starlark.Value, n)
	lats := make([]starlark.Value, n)
	lons := make([]starlark.Value, n)
	elevs := make([]starlark.Value, n)
	for i, r := range w.Candidates {
		ticks[i] = starlark.MakeInt64(r.Tick)
		vs[i] = toStarlarkValue(r.Value)
		lat, lon, ok := r.Location.LatLon()
		if ok {
			lats[i] = starlark.Float(lat)
			lons[i] = starlark.Float(lon)
		} else {
			lats[i] = starlark.None
			lons[i] = starlark.None
		}
		if r.Elevation.Valid() {
			elevs[i] = starlark.MakeInt64(int64(r.Elevation))
		} else {
			elevs[i] = starlark.None
		}
	}

	bound := func(bounded bool, v int64) starlark.Value {
		if !bounded {
			return starlark.None
		}
		return starlark.MakeInt64(v)
	}

	d := starlark.NewDict(8)
	d.SetKey(starlark.String("tick"), starlark.MakeInt64(w.Tick))
	d.SetKey(starlark.String("low"), bound(w.LowBounded, w.Low))
	d.SetKey(starlark.String("high"), bound(w.HighBounded, w.High))
	d.SetKey(starlark.String("ticks"), starlark.NewList(ticks))
	d.SetKey(starlark.String("values"), starlark.NewList(vs))
	d.SetKey(starlark.String("latitudes"), starlark.NewList(lats))
	d.SetKey(starlark.String("longitudes"), starlark.NewList(lons))
	d.SetKey(starlark.String("elevations"), starlark.NewList(elevs))
	return d
}

func toStarlarkValue(v values.Value) starlark.Value {
	switch v := v.(type) {
	case values.Int:
		return starlark.MakeInt64(int64(v))
	case values.Real:
		return starlark.Float(v)
	case values.Bool:
		return starlark.Bool(v)
	case values.Text:
		return starlark.String(v)
	}
	return starlark.None
}

func fromStarlarkValue(v starlark.Value) (values.Value, error) {
	switch v := v.(type) {
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("%w: integer overflow: %s", ErrInvalidResult, v)
		}
		return values.Int(i), nil
	case starlark.Float:
		return values.Real(v), nil
	case starlark.Bool:
		return values.Bool(v), nil
	case starlark.String:
		return values.Text(v), nil
	}
	return nil, fmt.Errorf("%w: unsupported value type %s", ErrInvalidResult, v.Type())
}

func fromStarlarkResult(v starlark.Value) ([]gts.Reading, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil, nil

	case starlark.Tuple:
		r, err := fromStarlarkReading(v)
		if err != nil {
			return nil, err
		}
		return []gts.Reading{r}, nil

	case *starlark.List:
		ret := make([]gts.Reading, 0, v.Len())
		for i := range v.Len() {
			tuple, ok := v.Index(i).(starlark.Tuple)
			if !ok {
				return nil, fmt.Errorf("%w: expecting a tuple, got %s", ErrInvalidResult, v.Index(i).Type())
			}
			r, err := fromStarlarkReading(tuple)
			if err != nil {
				return nil, err
			}
			ret = append(ret, r)
		}
		return ret, nil

	}
	return nil, fmt.Errorf("%w: unsupported result type %s", ErrInvalidResult, v.Type())
}

func fromStarlarkReading(t starlark.Tuple) (r gts.Reading, err error) {
	if len(t) != 2 {
		return r, fmt.Errorf("%w: expecting (tick, value), got %s", ErrInvalidResult, t)
	}
	i, ok := t[0].(starlark.Int)
	if !ok {
		return r, fmt.Errorf("%w: tick must be an integer, got %s", ErrInvalidResult, t[0].Type())
	}
	tick, ok := i.Int64()
	if !ok {
		return r, fmt.Errorf("%w: tick overflows: %s", ErrInvalidResult, i)
	}
	value, err := fromStarlarkValue(t[1])
	if err != nil {
		return r, err
	}
	return gts.At(tick, value), nil
}
