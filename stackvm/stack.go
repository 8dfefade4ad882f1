package stackvm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/gtscript/values"
)

func (m *Machine) Push(vs ...values.Value) {
	m.stack = append(m.stack, vs...)
}

func (m *Machine) Pop() (values.Value, error) {
	if len(m.stack) == 0 {
		return nil, underflow(1, 0)
	}
	v := m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

// PopN pops n values, returned in push order. Nothing is consumed on underflow.
func (m *Machine) PopN(n int) ([]values.Value, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrArgumentShape, n)
	}
	if n > len(m.stack) {
		return nil, underflow(n, len(m.stack))
	}
	start := len(m.stack) - n
	ret := slices.Clone(m.stack[start:])
	clear(m.stack[start:])
	m.stack = m.stack[:start]
	return ret, nil
}

// Peek returns the value at the given depth, 0 being the top.
func (m *Machine) Peek(depth int) (values.Value, error) {
	if depth < 0 || depth >= len(m.stack) {
		return nil, underflow(depth+1, len(m.stack))
	}
	return m.stack[len(m.stack)-1-depth], nil
}

func (m *Machine) Depth() int {
	return len(m.stack)
}

func (m *Machine) Clear() {
	clear(m.stack)
	m.stack = m.stack[:0]
	m.marks = m.marks[:0]
}

// Stack returns a copy of the stack, bottom first.
func (m *Machine) Stack() []values.Value {
	return slices.Clone(m.stack)
}

// Snapshot renders the stack top first, one level per line.
func (m *Machine) Snapshot() string {
	var sb strings.Builder
	for i := len(m.stack) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%d: %s\n", len(m.stack)-1-i, m.stack[i])
	}
	return sb.String()
}

// Mark records the current depth for a later PopToMark.
func (m *Machine) Mark() {
	m.marks = append(m.marks, len(m.stack))
}

// PopToMark pops everything pushed since the latest mark, in push order.
func (m *Machine) PopToMark() ([]values.Value, error) {
	if len(m.marks) == 0 {
		return nil, fmt.Errorf("%w: no opening marker", ErrUnbalancedMarker)
	}
	mark := m.marks[len(m.marks)-1]
	m.marks = m.marks[:len(m.marks)-1]
	if mark > len(m.stack) {
		return nil, fmt.Errorf("%w: values below the marker were consumed", ErrUnbalancedMarker)
	}
	return m.PopN(len(m.stack) - mark)
}
