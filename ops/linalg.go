package ops

import (
	"fmt"

	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

func floats(list *values.List) ([]float64, error) {
	ret := make([]float64, list.Len())
	for i, item := range list.Items {
		f, ok := values.AsFloat(item)
		if !ok {
			return nil, fmt.Errorf("%w: expecting number, got %s", values.ErrTypeMismatch, item.Kind())
		}
		ret[i] = f
	}
	return ret, nil
}

func realList(fs []float64) *values.List {
	items := make([]values.Value, len(fs))
	for i, f := range fs {
		items[i] = values.Real(f)
	}
	return values.NewList(items...)
}

func defineLinalg(r *stackvm.Registry) {

	r.DefineFunc("->V", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		list := o.list(0)
		if err := o.check(); err != nil {
			return err
		}
		data, err := floats(list)
		if err != nil {
			return o.restore(err)
		}
		v, err := values.NewVector(data)
		if err != nil {
			return o.restore(err)
		}
		m.Push(v)
		return nil
	})

	r.DefineFunc("->MAT", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		list := o.list(0)
		if err := o.check(); err != nil {
			return err
		}
		rows := make([][]float64, 0, list.Len())
		for _, item := range list.Items {
			row, ok := item.(*values.List)
			if !ok {
				return o.restore(fmt.Errorf("%w: expecting list, got %s", values.ErrTypeMismatch, item.Kind()))
			}
			data, err := floats(row)
			if err != nil {
				return o.restore(err)
			}
			rows = append(rows, data)
		}
		mat, err := values.NewMatrix(rows)
		if err != nil {
			return o.restore(err)
		}
		m.Push(mat)
		return nil
	})

	r.DefineFunc("V->", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		v := o.vector(0)
		if err := o.check(); err != nil {
			return err
		}
		m.Push(realList(v.Data()))
		return nil
	})

	r.DefineFunc("MAT->", func(m *stackvm.Machine) error {
		o, err := pop(m, 1)
		if err != nil {
			return err
		}
		mat := o.matrix(0)
		if err := o.check(); err != nil {
			return err
		}
		rows := mat.Rows()
		items := make([]values.Value, len(rows))
		for i, row := range rows {
			items[i] = realList(row)
		}
		m.Push(values.NewList(items...))
		return nil
	})

}
