package values

import (
	"slices"
	"strings"
)

type List struct {
	Items []Value
}

var _ Value = new(List)

func NewList(items ...Value) *List {
	return &List{
		Items: items,
	}
}

func (*List) Kind() Kind { return KindList }

func (l *List) Len() int {
	return len(l.Items)
}

// Get supports negative indexes counted from the end.
func (l *List) Get(i int) (Value, bool) {
	if i < 0 {
		i += len(l.Items)
	}
	if i < 0 || i >= len(l.Items) {
		return nil, false
	}
	return l.Items[i], true
}

// Clone returns a shallow copy that can be mutated without affecting the receiver.
func (l *List) Clone() *List {
	return &List{
		Items: slices.Clone(l.Items),
	}
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, item := range l.Items {
		sb.WriteString(" ")
		sb.WriteString(item.String())
	}
	sb.WriteString(" ]")
	return sb.String()
}
