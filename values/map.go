package values

import (
	"iter"
	"slices"
	"strings"
)

// Map is an insertion-ordered mapping from text keys to values.
type Map struct {
	keys    []string
	entries map[string]Value
}

var _ Value = new(Map)

func NewMap() *Map {
	return &Map{
		entries: make(map[string]Value),
	}
}

func (*Map) Kind() Kind { return KindMap }

func (m *Map) Len() int {
	return len(m.keys)
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Put keeps the original position of an existing key.
func (m *Map) Put(key string, value Value) {
	if m.entries == nil {
		m.entries = make(map[string]Value)
	}
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = value
}

func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range m.keys {
			if !yield(key, m.entries[key]) {
				return
			}
		}
	}
}

func (m *Map) Clone() *Map {
	ret := NewMap()
	for k, v := range m.All() {
		ret.Put(k, v)
	}
	return ret
}

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for k, v := range m.All() {
		sb.WriteString(" ")
		sb.WriteString(Text(k).String())
		sb.WriteString(" ")
		sb.WriteString(v.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
