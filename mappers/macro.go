package mappers

import (
	"fmt"
	"math"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/values"
	"github.com/reusee/gtscript/windows"
)

// MacroMapper delegates the reduction to a macro.
//
// The macro is called with a list on the stack:
//
//	[ tick low high [ [ value tick lat lon elev ] ... ] ]
//
// Unbounded limits are the extreme int64 values, absent locations and elevations are NaN.
// It must leave one value: an empty list, a reading [ tick value ] or [ tick lat lon elev value ],
// or a list of readings.
type MacroMapper struct {
	Macro *values.Macro
}

var _ Mapper = MacroMapper{}

func (MacroMapper) Kind() values.Kind {
	return values.KindFunction
}

func (MacroMapper) Name() string {
	return "MACROMAPPER"
}

func (m MacroMapper) String() string {
	return m.Macro.String() + " MACROMAPPER"
}

func (m MacroMapper) Map(caller Caller, w windows.Window) ([]gts.Reading, error) {
	depth := caller.Depth()
	caller.Push(windowValue(w))
	if err := caller.Exec(m.Macro); err != nil {
		return nil, err
	}
	if got := caller.Depth(); got != depth+1 {
		return nil, fmt.Errorf("%w: macro mapper must leave exactly one value, stack depth changed by %d",
			ErrInvalidResult, got-depth)
	}
	ret, err := caller.Pop()
	if err != nil {
		return nil, err
	}
	return parseResult(ret)
}

func windowValue(w windows.Window) values.Value {
	candidates := make([]values.Value, 0, len(w.Candidates))
	for _, r := range w.Candidates {
		lat, lon, _ := r.Location.LatLon()
		elev := math.NaN()
		if r.Elevation.Valid() {
			elev = float64(r.Elevation)
		}
		candidates = append(candidates, values.NewList(
			r.Value,
			values.Int(r.Tick),
			values.Real(lat),
			values.Real(lon),
			values.Real(elev),
		))
	}
	return values.NewList(
		values.Int(w.Tick),
		values.Int(w.Low),
		values.Int(w.High),
		values.NewList(candidates...),
	)
}

func parseResult(v values.Value) ([]gts.Reading, error) {
	list, ok := v.(*values.List)
	if !ok {
		return nil, fmt.Errorf("%w: expecting a list, got %s", ErrInvalidResult, v.Kind())
	}
	if list.Len() == 0 {
		return nil, nil
	}
	if _, nested := list.Items[0].(*values.List); !nested {
		r, err := parseReading(list)
		if err != nil {
			return nil, err
		}
		return []gts.Reading{r}, nil
	}
	ret := make([]gts.Reading, 0, list.Len())
	for _, item := range list.Items {
		l, ok := item.(*values.List)
		if !ok {
			return nil, fmt.Errorf("%w: expecting a reading, got %s", ErrInvalidResult, item.Kind())
		}
		r, err := parseReading(l)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func parseReading(l *values.List) (r gts.Reading, err error) {
	var lat, lon, elev float64
	switch l.Len() {
	case 2:
		lat, lon, elev = math.NaN(), math.NaN(), math.NaN()
	case 5:
		var ok1, ok2, ok3 bool
		lat, ok1 = values.AsFloat(l.Items[1])
		lon, ok2 = values.AsFloat(l.Items[2])
		elev, ok3 = values.AsFloat(l.Items[3])
		if !ok1 || !ok2 || !ok3 {
			return r, fmt.Errorf("%w: location and elevation must be numbers: %s", ErrInvalidResult, l)
		}
	default:
		return r, fmt.Errorf("%w: a reading has 2 or 5 elements, got %d", ErrInvalidResult, l.Len())
	}

	tick, ok := values.AsInt(l.Items[0])
	if !ok {
		return r, fmt.Errorf("%w: tick must be an integer: %s", ErrInvalidResult, l.Items[0])
	}
	r = gts.At(tick, l.Items[l.Len()-1])
	if r.Value == nil || !r.Value.Kind().IsScalar() {
		return r, fmt.Errorf("%w: %s", gts.ErrInvalidValue, r.Value)
	}

	if !math.IsNaN(lat) && !math.IsNaN(lon) {
		r.Location, err = gts.NewLocation(lat, lon)
		if err != nil {
			return r, err
		}
	}
	if !math.IsNaN(elev) {
		r.Elevation = gts.Elevation(int64(elev))
	}
	return r, nil
}
