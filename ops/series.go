package ops

import (
	"fmt"
	"math"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

// seriesOp applies fn to the series on top of the stack.
func seriesOp(fn func(m *stackvm.Machine, s *gts.Series) error) stackvm.OperatorFunc {
	return func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		s := o.series(0)
		if err := o.check(); err != nil {
			return err
		}
		return fn(m, s)
	}
}

func defineSeries(r *stackvm.Registry) {

	r.DefineFunc("NEWGTS", func(m *stackvm.Machine) error {
		m.Push(gts.New("", nil))
		return nil
	})

	r.DefineFunc("RENAME", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		s := o.series(0)
		name := o.text(1)
		if err := o.check(); err != nil {
			return err
		}
		m.Push(s.WithName(name))
		return nil
	})

	// series { 'k' 'v' } RELABEL
	r.DefineFunc("RELABEL", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		s := o.series(0)
		dict := o.dict(1)
		if err := o.check(); err != nil {
			return err
		}
		labels := s.Labels()
		if labels == nil {
			labels = make(map[string]string)
		}
		for k, v := range dict.All() {
			text, ok := v.(values.Text)
			if !ok {
				return o.restore(fmt.Errorf("%w: label values must be strings, got %s", values.ErrTypeMismatch, v.Kind()))
			}
			if text == "" {
				delete(labels, k)
				continue
			}
			labels[k] = string(text)
		}
		m.Push(s.WithLabels(labels))
		return nil
	})

	r.Define("NAME", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		m.Push(values.Text(s.Name()))
		return nil
	}))

	r.Define("LABELS", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		ret := values.NewMap()
		labels := s.Labels()
		for _, k := range sortedKeys(labels) {
			ret.Put(k, values.Text(labels[k]))
		}
		m.Push(ret)
		return nil
	}))

	// series tick lat lon elev value ADDVALUE, NaN for absent location or elevation
	r.DefineFunc("ADDVALUE", func(m *stackvm.Machine) error {
		o, err := pop(m, 6)
		if err != nil {
			return err
		}
		s := o.series(0)
		tick := o.int(1)
		lat := o.float(2)
		lon := o.float(3)
		elev := o.float(4)
		if err := o.check(); err != nil {
			return err
		}

		reading := gts.At(tick, o.vs[5])
		if !math.IsNaN(lat) && !math.IsNaN(lon) {
			reading.Location, err = gts.NewLocation(lat, lon)
			if err != nil {
				return o.restore(err)
			}
		}
		if !math.IsNaN(elev) {
			reading.Elevation = gts.Elevation(int64(elev))
		}

		ret, err := s.Append(reading)
		if err != nil {
			return o.restore(err)
		}
		m.Push(ret)
		return nil
	})

	r.Define("TICKLIST", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		ticks := s.Ticks()
		items := make([]values.Value, len(ticks))
		for i, tick := range ticks {
			items[i] = values.Int(tick)
		}
		m.Push(values.NewList(items...))
		return nil
	}))

	r.Define("VALUES", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		m.Push(values.NewList(s.Values()...))
		return nil
	}))

	r.Define("SORT", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		m.Push(s.Sort())
		return nil
	}))

	r.Define("RSORT", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		m.Push(s.ReverseSort())
		return nil
	}))

	r.Define("FIRSTTICK", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		sorted := s.Sorted()
		if len(sorted) == 0 {
			m.Push(values.Int(math.MaxInt64))
			return nil
		}
		m.Push(values.Int(sorted[0].Tick))
		return nil
	}))

	r.Define("LASTTICK", seriesOp(func(m *stackvm.Machine, s *gts.Series) error {
		sorted := s.Sorted()
		if len(sorted) == 0 {
			m.Push(values.Int(math.MinInt64))
			return nil
		}
		m.Push(values.Int(sorted[len(sorted)-1].Tick))
		return nil
	}))

	// series low high TIMECLIP
	r.DefineFunc("TIMECLIP", func(m *stackvm.Machine) error {
		o, err := pop(m, 3)
		if err != nil {
			return err
		}
		s := o.series(0)
		low := o.int(1)
		high := o.int(2)
		if err := o.check(); err != nil {
			return err
		}
		m.Push(s.SliceByTickRange(low, high))
		return nil
	})

}
