package ops

import (
	"fmt"

	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

func defineStack(r *stackvm.Registry) {

	r.DefineFunc("DUP", func(m *stackvm.Machine) error {
		v, err := m.Peek(0)
		if err != nil {
			return err
		}
		m.Push(v)
		return nil
	})

	r.DefineFunc("DROP", func(m *stackvm.Machine) error {
		_, err := m.Pop()
		return err
	})

	r.DefineFunc("SWAP", func(m *stackvm.Machine) error {
		vs, err := m.PopN(2)
		if err != nil {
			return err
		}
		m.Push(vs[1], vs[0])
		return nil
	})

	r.DefineFunc("OVER", func(m *stackvm.Machine) error {
		v, err := m.Peek(1)
		if err != nil {
			return err
		}
		m.Push(v)
		return nil
	})

	r.DefineFunc("ROT", func(m *stackvm.Machine) error {
		vs, err := m.PopN(3)
		if err != nil {
			return err
		}
		m.Push(vs[1], vs[2], vs[0])
		return nil
	})

	// n ROLL moves the n-th level to the top, 1 being the top level
	r.DefineFunc("ROLL", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		n := o.int(0)
		if err := o.check(); err != nil {
			return err
		}
		if n < 0 {
			return o.restore(fmt.Errorf("%w: negative level %d", stackvm.ErrArgumentShape, n))
		}
		if n > int64(m.Depth()) {
			return o.restore(fmt.Errorf("%w: level %d, depth %d", stackvm.ErrStackUnderflow, n, m.Depth()))
		}
		if n <= 1 {
			return nil
		}
		vs, err := m.PopN(int(n))
		if err != nil {
			return err
		}
		m.Push(vs[1:]...)
		m.Push(vs[0])
		return nil
	})

	// n PICK copies the n-th level, 0 being the top level
	r.DefineFunc("PICK", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		n := o.int(0)
		if err := o.check(); err != nil {
			return err
		}
		if n < 0 || n >= int64(m.Depth()) {
			return o.restore(fmt.Errorf("%w: level %d, depth %d", stackvm.ErrStackUnderflow, n, m.Depth()))
		}
		v, err := m.Peek(int(n))
		if err != nil {
			return err
		}
		m.Push(v)
		return nil
	})

	r.DefineFunc("DEPTH", func(m *stackvm.Machine) error {
		m.Push(values.Int(m.Depth()))
		return nil
	})

	r.DefineFunc("CLEAR", func(m *stackvm.Machine) error {
		m.Clear()
		return nil
	})

}
