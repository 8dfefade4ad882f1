package ops

import (
	"github.com/reusee/gtscript/mappers"
	"github.com/reusee/gtscript/stackvm"
)

func defineMappers(r *stackvm.Registry) {

	r.Define("MAP", mapOperator)

	for _, mapper := range mappers.Builtins {
		r.DefineFunc(mapper.Name(), func(m *stackvm.Machine) error {
			m.Push(mapper)
			return nil
		})
	}

	// value mapper.replace
	r.DefineFunc("mapper.replace", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		mapper, err := mappers.Replace(o.vs[0])
		if err != nil {
			return o.restore(err)
		}
		m.Push(mapper)
		return nil
	})

	r.DefineFunc("MACROMAPPER", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		macro := o.macro(0)
		if err := o.check(); err != nil {
			return err
		}
		m.Push(mappers.MacroMapper{
			Macro: macro,
		})
		return nil
	})

	r.DefineFunc("STARLARKMAPPER", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		source := o.text(0)
		if err := o.check(); err != nil {
			return err
		}
		mapper, err := mappers.NewStarlarkMapper(m, "mapper.star", source)
		if err != nil {
			return o.restore(err)
		}
		m.Push(mapper)
		return nil
	})

}
