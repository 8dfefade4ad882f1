package ops

import (
	"errors"
	"fmt"

	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

var ErrUndefinedVariable = errors.New("undefined variable")

// condition evaluates a boolean, running it first when it is a macro.
func condition(m *stackvm.Machine, v values.Value) (bool, error) {
	if macro, ok := v.(*values.Macro); ok {
		if err := m.Exec(macro); err != nil {
			return false, err
		}
		ret, err := m.Pop()
		if err != nil {
			return false, err
		}
		v = ret
	}
	b, ok := v.(values.Bool)
	if !ok {
		return false, fmt.Errorf("%w: condition must be a boolean, got %s", values.ErrTypeMismatch, v.Kind())
	}
	return bool(b), nil
}

func defineControl(r *stackvm.Registry) {

	r.DefineFunc("EVAL", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		switch v := o.vs[0].(type) {
		case *values.Macro:
			return m.Exec(v)
		case values.Text:
			macro, err := stackvm.CompileString("EVAL", string(v))
			if err != nil {
				return o.restore(err)
			}
			return m.Exec(macro)
		}
		o.fail("macro or string", o.vs[0])
		return o.check()
	})

	// from to macro FOR
	r.DefineFunc("FOR", func(m *stackvm.Machine) error {
		o, err := pop(m, 3)
		if err != nil {
			return err
		}
		from := o.int(0)
		to := o.int(1)
		macro := o.macro(2)
		if err := o.check(); err != nil {
			return err
		}
		step := int64(1)
		if to < from {
			step = -1
		}
		for i := from; ; i += step {
			m.Push(values.Int(i))
			if err := m.Exec(macro); err != nil {
				return err
			}
			if i == to {
				break
			}
		}
		return nil
	})

	// container macro FOREACH
	r.DefineFunc("FOREACH", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		macro := o.macro(1)
		if err := o.check(); err != nil {
			return err
		}
		switch container := o.vs[0].(type) {
		case *values.List:
			for _, item := range container.Items {
				m.Push(item)
				if err := m.Exec(macro); err != nil {
					return err
				}
			}
		case *values.Map:
			for k, v := range container.All() {
				m.Push(values.Text(k), v)
				if err := m.Exec(macro); err != nil {
					return err
				}
			}
		default:
			o.fail("list or map", o.vs[0])
			return o.check()
		}
		return nil
	})

	// cond body WHILE
	r.DefineFunc("WHILE", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		cond := o.macro(0)
		body := o.macro(1)
		if err := o.check(); err != nil {
			return err
		}
		for {
			ok, err := condition(m, cond)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := m.Exec(body); err != nil {
				return err
			}
		}
	})

	r.DefineFunc("IFT", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		o.condition(0)
		then := o.macro(1)
		if err := o.check(); err != nil {
			return err
		}
		ok, err := condition(m, o.vs[0])
		if err != nil {
			return err
		}
		if ok {
			return m.Exec(then)
		}
		return nil
	})

	r.DefineFunc("IFTE", func(m *stackvm.Machine) error {
		o, err := pop(m, 3)
		if err != nil {
			return err
		}
		o.condition(0)
		then := o.macro(1)
		otherwise := o.macro(2)
		if err := o.check(); err != nil {
			return err
		}
		ok, err := condition(m, o.vs[0])
		if err != nil {
			return err
		}
		if ok {
			return m.Exec(then)
		}
		return m.Exec(otherwise)
	})

	r.DefineFunc("ASSERT", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		ok := o.bool(0)
		if err := o.check(); err != nil {
			return err
		}
		if !ok {
			return stackvm.ErrAssertion
		}
		return nil
	})

	// value 'name' STORE
	r.DefineFunc("STORE", func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		name := o.text(1)
		if err := o.check(); err != nil {
			return err
		}
		m.Store(name, o.vs[0])
		return nil
	})

	r.DefineFunc("LOAD", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		name := o.text(0)
		if err := o.check(); err != nil {
			return err
		}
		v, ok := m.Load(name)
		if !ok {
			return o.restore(fmt.Errorf("%w: %s", ErrUndefinedVariable, name))
		}
		m.Push(v)
		return nil
	})

}
