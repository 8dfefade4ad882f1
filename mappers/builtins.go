package mappers

import (
	"fmt"
	"math"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/values"
	"github.com/reusee/gtscript/windows"
)

// stamp moves a reading to the reference tick.
func stamp(w windows.Window, r gts.Reading) []gts.Reading {
	r.Tick = w.Tick
	return []gts.Reading{r}
}

// extreme keeps the first extreme in tick order. NaN values are ignored.
func extreme(name string, better func(int) bool) Func {
	return NewFunc(name, func(w windows.Window) ([]gts.Reading, error) {
		best := -1
		for i, r := range w.Candidates {
			if f, ok := r.Value.(values.Real); ok && math.IsNaN(float64(f)) {
				continue
			}
			if best < 0 {
				best = i
				continue
			}
			c, err := values.Compare(r.Value, w.Candidates[best].Value)
			if err != nil {
				return nil, err
			}
			if better(c) {
				best = i
			}
		}
		if best < 0 {
			return nil, nil
		}
		return stamp(w, w.Candidates[best]), nil
	})
}

var (
	Max = extreme("mapper.max", func(c int) bool { return c > 0 })

	Min = extreme("mapper.min", func(c int) bool { return c < 0 })

	First = NewFunc("mapper.first", func(w windows.Window) ([]gts.Reading, error) {
		if len(w.Candidates) == 0 {
			return nil, nil
		}
		return stamp(w, w.Candidates[0]), nil
	})

	Last = NewFunc("mapper.last", func(w windows.Window) ([]gts.Reading, error) {
		if len(w.Candidates) == 0 {
			return nil, nil
		}
		return stamp(w, w.Candidates[len(w.Candidates)-1]), nil
	})

	Count = NewFunc("mapper.count", func(w windows.Window) ([]gts.Reading, error) {
		return []gts.Reading{
			gts.At(w.Tick, values.Int(len(w.Candidates))),
		}, nil
	})

	Sum = NewFunc("mapper.sum", func(w windows.Window) ([]gts.Reading, error) {
		if len(w.Candidates) == 0 {
			return nil, nil
		}
		total, err := sum(w.Candidates)
		if err != nil {
			return nil, err
		}
		return []gts.Reading{gts.At(w.Tick, total)}, nil
	})

	Mean = NewFunc("mapper.mean", func(w windows.Window) ([]gts.Reading, error) {
		if len(w.Candidates) == 0 {
			return nil, nil
		}
		total, err := sum(w.Candidates)
		if err != nil {
			return nil, err
		}
		f, _ := values.AsFloat(total)
		return []gts.Reading{
			gts.At(w.Tick, values.Real(f/float64(len(w.Candidates)))),
		}, nil
	})

	Delta = NewFunc("mapper.delta", func(w windows.Window) ([]gts.Reading, error) {
		if len(w.Candidates) == 0 {
			return nil, nil
		}
		first := w.Candidates[0].Value
		last := w.Candidates[len(w.Candidates)-1].Value
		ai, bi, af, bf, isReal, ok := values.Promote(first, last)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, first.Kind())
		}
		var delta values.Value = values.Int(bi - ai)
		if isReal {
			delta = values.Real(bf - af)
		}
		return []gts.Reading{gts.At(w.Tick, delta)}, nil
	})
)

// Replace emits value at every reference tick, whatever the window holds.
func Replace(value values.Value) (Func, error) {
	if value == nil || !value.Kind().IsScalar() {
		return Func{}, fmt.Errorf("%w: %s", gts.ErrInvalidValue, value)
	}
	return NewFunc("mapper.replace", func(w windows.Window) ([]gts.Reading, error) {
		return []gts.Reading{gts.At(w.Tick, value)}, nil
	}), nil
}

func sum(readings []gts.Reading) (values.Value, error) {
	var i int64
	var f float64
	isReal := false
	for _, r := range readings {
		switch v := r.Value.(type) {
		case values.Int:
			i += int64(v)
		case values.Real:
			isReal = true
			f += float64(v)
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, r.Value.Kind())
		}
	}
	if isReal {
		return values.Real(f + float64(i)), nil
	}
	return values.Int(i), nil
}

// Builtins lists the mappers that take no parameter.
var Builtins = []Func{
	Max, Min, First, Last, Count, Sum, Mean, Delta,
}
