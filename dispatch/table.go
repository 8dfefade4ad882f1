// Package dispatch selects operator behaviors from ordered tables of operand patterns.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/gtscript/values"
)

var ErrUnsupportedOperandTypes = errors.New("unsupported operand types")

// Class matches a family of value kinds.
type Class uint8

const (
	Any Class = iota
	Number
	Integer
	Real
	Boolean
	Text
	List
	Map
	Macro
	Series
	Vector
	Matrix
	Function
)

var classKinds = [...]values.Kind{
	Integer:  values.KindInt,
	Real:     values.KindReal,
	Boolean:  values.KindBool,
	Text:     values.KindText,
	List:     values.KindList,
	Map:      values.KindMap,
	Macro:    values.KindMacro,
	Series:   values.KindSeries,
	Vector:   values.KindVector,
	Matrix:   values.KindMatrix,
	Function: values.KindFunction,
}

func (c Class) Match(v values.Value) bool {
	if v == nil {
		return false
	}
	switch c {
	case Any:
		return true
	case Number:
		return v.Kind().IsNumber()
	}
	return int(c) < len(classKinds) && classKinds[c] == v.Kind()
}

// Pattern holds one class per operand, in push order: the deepest operand first.
type Pattern []Class

func (p Pattern) Match(args []values.Value) bool {
	if len(p) != len(args) {
		return false
	}
	for i, class := range p {
		if !class.Match(args[i]) {
			return false
		}
	}
	return true
}

type Behavior func(args []values.Value) (values.Value, error)

type Rule struct {
	Pattern  Pattern
	Behavior Behavior
}

// Table is an ordered rule list for one operator. The first matching rule wins.
type Table struct {
	Op    string
	Rules []Rule
}

func (t *Table) Arity() int {
	if len(t.Rules) == 0 {
		return 0
	}
	return len(t.Rules[0].Pattern)
}

// Select returns the index of the first rule matching args, or -1.
func (t *Table) Select(args []values.Value) int {
	for i, rule := range t.Rules {
		if rule.Pattern.Match(args) {
			return i
		}
	}
	return -1
}

func (t *Table) Dispatch(args ...values.Value) (values.Value, error) {
	idx := t.Select(args)
	if idx < 0 {
		return nil, t.unsupported(args)
	}
	return t.Rules[idx].Behavior(args)
}

func (t *Table) unsupported(args []values.Value) error {
	kinds := make([]string, len(args))
	for i, arg := range args {
		if arg == nil {
			kinds[i] = values.KindInvalid.String()
			continue
		}
		kinds[i] = arg.Kind().String()
	}
	return fmt.Errorf("%w: %s cannot operate on %s",
		ErrUnsupportedOperandTypes, t.Op, strings.Join(kinds, ", "))
}
