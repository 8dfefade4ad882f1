package ops

import (
	"github.com/reusee/gtscript/dispatch"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

// binary applies a dispatch table to the two top values.
func binary(table *dispatch.Table) stackvm.OperatorFunc {
	return func(m *stackvm.Machine) error {
		o, err := pop(m, table.Arity())
		if err != nil {
			return err
		}
		ret, err := table.Dispatch(o.vs...)
		if err != nil {
			return o.restore(err)
		}
		m.Push(ret)
		return nil
	}
}

func equality(negate bool) stackvm.OperatorFunc {
	return func(m *stackvm.Machine) error {
		o, err := pop(m, 2)
		if err != nil {
			return err
		}
		eq, err := values.Equal(o.vs[0], o.vs[1])
		if err != nil {
			return o.restore(err)
		}
		m.Push(values.Bool(eq != negate))
		return nil
	}
}

func defineArith(r *stackvm.Registry) {
	for name, table := range map[string]*dispatch.Table{
		"+":  dispatch.Add,
		"-":  dispatch.Sub,
		"*":  dispatch.Mul,
		"/":  dispatch.Div,
		"%":  dispatch.Mod,
		"**": dispatch.Pow,
		"<":  dispatch.Lt,
		">":  dispatch.Gt,
		"<=": dispatch.Le,
		">=": dispatch.Ge,
		"&&": dispatch.And,
		"||": dispatch.Or,
	} {
		r.Define(name, binary(table))
	}

	r.Define("==", equality(false))
	r.Define("!=", equality(true))

	r.DefineFunc("NOT", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		b := o.bool(0)
		if err := o.check(); err != nil {
			return err
		}
		m.Push(values.Bool(!b))
		return nil
	})
}
