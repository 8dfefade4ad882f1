package stackvm

import (
	"fmt"
	"maps"
	"slices"
)

// Operator consumes operands from the machine stack and pushes its results.
type Operator interface {
	Apply(m *Machine) error
}

type OperatorFunc func(m *Machine) error

func (f OperatorFunc) Apply(m *Machine) error {
	return f(m)
}

// Registry maps operator names to implementations.
type Registry struct {
	operators map[string]Operator
}

func NewRegistry() *Registry {
	return &Registry{
		operators: make(map[string]Operator),
	}
}

func (r *Registry) Define(name string, op Operator) {
	if _, ok := r.operators[name]; ok {
		panic(fmt.Errorf("duplicated operator %s", name))
	}
	r.operators[name] = op
}

func (r *Registry) DefineFunc(name string, fn func(m *Machine) error) {
	r.Define(name, OperatorFunc(fn))
}

func (r *Registry) Get(name string) (Operator, bool) {
	op, ok := r.operators[name]
	return op, ok
}

func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.operators))
}

// Fork returns a copy that can be extended without affecting the receiver.
func (r *Registry) Fork() *Registry {
	return &Registry{
		operators: maps.Clone(r.operators),
	}
}
