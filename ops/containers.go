package ops

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

func defineContainers(r *stackvm.Registry) {

	r.DefineFunc("[", func(m *stackvm.Machine) error {
		m.Mark()
		return nil
	})

	r.DefineFunc("]", func(m *stackvm.Machine) error {
		vs, err := m.PopToMark()
		if err != nil {
			return err
		}
		m.Push(values.NewList(vs...))
		return nil
	})

	r.DefineFunc("{", func(m *stackvm.Machine) error {
		m.Mark()
		return nil
	})

	r.DefineFunc("}", func(m *stackvm.Machine) error {
		vs, err := m.PopToMark()
		if err != nil {
			return err
		}
		if len(vs)%2 != 0 {
			m.Push(vs...)
			return fmt.Errorf("%w: odd number of map elements", stackvm.ErrArgumentShape)
		}
		ret := values.NewMap()
		for i := 0; i < len(vs); i += 2 {
			key, ok := vs[i].(values.Text)
			if !ok {
				m.Push(vs...)
				return fmt.Errorf("%w: map keys must be strings, got %s", values.ErrTypeMismatch, vs[i].Kind())
			}
			ret.Put(string(key), vs[i+1])
		}
		m.Push(ret)
		return nil
	})

	r.DefineFunc("LIST->", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		list := o.list(0)
		if err := o.check(); err != nil {
			return err
		}
		m.Push(list.Items...)
		m.Push(values.Int(list.Len()))
		return nil
	})

	r.DefineFunc("->LIST", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		n := o.int(0)
		if err := o.check(); err != nil {
			return err
		}
		if n < 0 || n > int64(m.Depth()) {
			return o.restore(fmt.Errorf("%w: need %d elements, got %d", stackvm.ErrStackUnderflow, n, m.Depth()))
		}
		vs, err := m.PopN(int(n))
		if err != nil {
			return err
		}
		m.Push(values.NewList(vs...))
		return nil
	})

	r.DefineFunc("GET", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		switch container := o.vs[0].(type) {
		case *values.List:
			idx := o.int(1)
			if err := o.check(); err != nil {
				return err
			}
			v, ok := container.Get(int(idx))
			if !ok {
				return o.restore(fmt.Errorf("%w: index %d out of range", stackvm.ErrArgumentShape, idx))
			}
			m.Push(v)
		case *values.Map:
			key := o.text(1)
			if err := o.check(); err != nil {
				return err
			}
			v, ok := container.Get(key)
			if !ok {
				return o.restore(fmt.Errorf("%w: key %q not found", stackvm.ErrArgumentShape, key))
			}
			m.Push(v)
		default:
			o.fail("list or map", o.vs[0])
			return o.check()
		}
		return nil
	})

	r.DefineFunc("SIZE", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		var size int
		switch v := o.vs[0].(type) {
		case *values.List:
			size = v.Len()
		case *values.Map:
			size = v.Len()
		case values.Text:
			size = utf8.RuneCountInString(string(v))
		case *values.Macro:
			size = len(v.Statements)
		case *gts.Series:
			size = v.Len()
		case values.Vector:
			size = v.Len()
		default:
			o.fail("container", o.vs[0])
			return o.check()
		}
		m.Push(values.Int(size))
		return nil
	})

	r.DefineFunc("REVERSE", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		switch v := o.vs[0].(type) {
		case *values.List:
			ret := v.Clone()
			slices.Reverse(ret.Items)
			m.Push(ret)
		case values.Text:
			runes := []rune(string(v))
			slices.Reverse(runes)
			m.Push(values.Text(runes))
		default:
			o.fail("list or string", o.vs[0])
			return o.check()
		}
		return nil
	})

	r.DefineFunc("APPEND", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		switch a := o.vs[0].(type) {
		case *values.List:
			b := o.list(1)
			if err := o.check(); err != nil {
				return err
			}
			ret := a.Clone()
			ret.Items = append(ret.Items, b.Items...)
			m.Push(ret)
		case *values.Map:
			b := o.dict(1)
			if err := o.check(); err != nil {
				return err
			}
			ret := a.Clone()
			for k, v := range b.All() {
				ret.Put(k, v)
			}
			m.Push(ret)
		default:
			o.fail("list or map", o.vs[0])
			return o.check()
		}
		return nil
	})

	// map value key PUT
	r.DefineFunc("PUT", func(m *stackvm.Machine) error {
		o, err := pop(m, 3)
		if err != nil {
			return err
		}
		dict := o.dict(0)
		key := o.text(2)
		if err := o.check(); err != nil {
			return err
		}
		ret := dict.Clone()
		ret.Put(key, o.vs[1])
		m.Push(ret)
		return nil
	})

	r.DefineFunc("KEYS", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		dict := o.dict(0)
		if err := o.check(); err != nil {
			return err
		}
		keys := dict.Keys()
		ret := make([]values.Value, len(keys))
		for i, key := range keys {
			ret[i] = values.Text(key)
		}
		m.Push(values.NewList(ret...))
		return nil
	})

	r.DefineFunc("->JSON", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		bs, err := marshalJSON(o.vs[0])
		if err != nil {
			return o.restore(err)
		}
		m.Push(values.Text(bs))
		return nil
	})

	r.DefineFunc("JSON->", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		text := o.text(0)
		if err := o.check(); err != nil {
			return err
		}
		v, err := unmarshalJSON([]byte(text))
		if err != nil {
			return o.restore(err)
		}
		m.Push(v)
		return nil
	})

}
