// Package ops implements the operator library.
package ops

import (
	"fmt"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/mappers"
	"github.com/reusee/gtscript/stackvm"
	"github.com/reusee/gtscript/values"
)

// operands holds popped values until they are checked. The first conversion failure is kept,
// and check pushes every operand back when there is one.
type operands struct {
	m   *stackvm.Machine
	vs  []values.Value
	err error
}

func pop(m *stackvm.Machine, n int) (*operands, error) {
	vs, err := m.PopN(n)
	if err != nil {
		return nil, err
	}
	return &operands{
		m:  m,
		vs: vs,
	}, nil
}

func (o *operands) fail(want string, v values.Value) {
	if o.err != nil {
		return
	}
	got := values.KindInvalid
	if v != nil {
		got = v.Kind()
	}
	o.err = fmt.Errorf("%w: expecting %s, got %s", values.ErrTypeMismatch, want, got)
}

// check returns the first failure, after restoring the operands.
func (o *operands) check() error {
	if o.err == nil {
		return nil
	}
	o.m.Push(o.vs...)
	return o.err
}

// restore pushes the operands back and returns err.
func (o *operands) restore(err error) error {
	o.m.Push(o.vs...)
	return err
}

func (o *operands) int(i int) int64 {
	ret, ok := values.AsInt(o.vs[i])
	if !ok {
		o.fail("integer", o.vs[i])
	}
	return ret
}

func (o *operands) float(i int) float64 {
	ret, ok := values.AsFloat(o.vs[i])
	if !ok {
		o.fail("number", o.vs[i])
	}
	return ret
}

func (o *operands) bool(i int) bool {
	ret, ok := o.vs[i].(values.Bool)
	if !ok {
		o.fail("boolean", o.vs[i])
	}
	return bool(ret)
}

// condition accepts a boolean or a macro computing one.
func (o *operands) condition(i int) {
	switch o.vs[i].(type) {
	case values.Bool, *values.Macro:
	default:
		o.fail("boolean or macro", o.vs[i])
	}
}

func (o *operands) text(i int) string {
	ret, ok := o.vs[i].(values.Text)
	if !ok {
		o.fail("string", o.vs[i])
	}
	return string(ret)
}

func (o *operands) list(i int) *values.List {
	ret, ok := o.vs[i].(*values.List)
	if !ok {
		o.fail("list", o.vs[i])
	}
	return ret
}

func (o *operands) dict(i int) *values.Map {
	ret, ok := o.vs[i].(*values.Map)
	if !ok {
		o.fail("map", o.vs[i])
	}
	return ret
}

func (o *operands) macro(i int) *values.Macro {
	ret, ok := o.vs[i].(*values.Macro)
	if !ok {
		o.fail("macro", o.vs[i])
	}
	return ret
}

func (o *operands) series(i int) *gts.Series {
	ret, ok := o.vs[i].(*gts.Series)
	if !ok {
		o.fail("GTS", o.vs[i])
	}
	return ret
}

func (o *operands) vector(i int) values.Vector {
	ret, ok := o.vs[i].(values.Vector)
	if !ok {
		o.fail("vector", o.vs[i])
	}
	return ret
}

func (o *operands) matrix(i int) values.Matrix {
	ret, ok := o.vs[i].(values.Matrix)
	if !ok {
		o.fail("matrix", o.vs[i])
	}
	return ret
}

func (o *operands) mapper(i int) mappers.Mapper {
	ret, ok := o.vs[i].(mappers.Mapper)
	if !ok {
		o.fail("mapper", o.vs[i])
	}
	return ret
}
