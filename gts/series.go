package gts

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/reusee/gtscript/values"
)

var ErrInvalidValue = errors.New("invalid reading value")

// Series is a Geo Time Serie.
//
// A *Series handle never changes the readings it exposes: Append returns a new handle.
// Handles appended from the latest one share the same backing array, so building a series
// reading by reading stays O(1) amortized.
type Series struct {
	name   string
	labels map[string]string

	readings []Reading
	tip      *tip

	kind          values.Kind
	heterogeneous bool
	ordered       bool
	descending    bool

	sortOnce sync.Once
	sorted   []Reading
}

// tip tracks how many readings of a shared backing array are owned by the latest handle.
type tip struct {
	mu     sync.Mutex
	length int
}

var _ values.Value = new(Series)

func New(name string, labels map[string]string) *Series {
	return &Series{
		name:    name,
		labels:  maps.Clone(labels),
		tip:     new(tip),
		ordered: true,
	}
}

func (*Series) Kind() values.Kind {
	return values.KindSeries
}

func (s *Series) Name() string {
	return s.name
}

func (s *Series) Labels() map[string]string {
	return maps.Clone(s.labels)
}

func (s *Series) derive() *Series {
	return &Series{
		name:          s.name,
		labels:        s.labels,
		readings:      s.readings,
		tip:           s.tip,
		kind:          s.kind,
		heterogeneous: s.heterogeneous,
		ordered:       s.ordered,
		descending:    s.descending,
	}
}

func (s *Series) WithName(name string) *Series {
	ret := s.derive()
	ret.name = name
	return ret
}

func (s *Series) WithLabels(labels map[string]string) *Series {
	ret := s.derive()
	ret.labels = maps.Clone(labels)
	return ret
}

// Append returns a new handle with the reading added. The receiver is left untouched.
func (s *Series) Append(r Reading) (*Series, error) {
	if r.Value == nil || !r.Value.Kind().IsScalar() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, r.Value)
	}

	ret := s.derive()
	ret.descending = false

	s.tip.mu.Lock()
	if s.tip.length == len(s.readings) {
		ret.readings = append(s.readings, r)
		s.tip.length++
	} else {
		readings := make([]Reading, len(s.readings), len(s.readings)*2+1)
		copy(readings, s.readings)
		ret.readings = append(readings, r)
		ret.tip = &tip{
			length: len(ret.readings),
		}
	}
	s.tip.mu.Unlock()

	if len(s.readings) == 0 {
		ret.kind = r.Value.Kind()
		ret.ordered = true
	} else {
		if r.Value.Kind() != s.kind {
			ret.heterogeneous = true
		}
		ret.ordered = s.ordered && r.Tick > s.readings[len(s.readings)-1].Tick
	}

	return ret, nil
}

// Sorted returns the readings ordered by tick, keeping the last written reading for duplicated ticks.
// The result is cached per handle and must not be modified.
func (s *Series) Sorted() []Reading {
	s.sortOnce.Do(func() {
		if s.ordered {
			s.sorted = s.readings[:len(s.readings):len(s.readings)]
			return
		}
		sorted := slices.Clone(s.readings)
		slices.SortStableFunc(sorted, func(a, b Reading) int {
			return cmp.Compare(a.Tick, b.Tick)
		})
		out := sorted[:0]
		for i, r := range sorted {
			if i+1 < len(sorted) && sorted[i+1].Tick == r.Tick {
				continue
			}
			out = append(out, r)
		}
		s.sorted = out
	})
	return s.sorted
}

// Readings returns the readings in presentation order: ascending ticks, or descending after ReverseSort.
func (s *Series) Readings() []Reading {
	sorted := s.Sorted()
	if !s.descending {
		return sorted
	}
	ret := slices.Clone(sorted)
	slices.Reverse(ret)
	return ret
}

func (s *Series) Len() int {
	return len(s.Sorted())
}

// Sort returns a handle presenting readings in ascending tick order.
func (s *Series) Sort() *Series {
	ret := s.derive()
	ret.descending = false
	return ret
}

// ReverseSort returns a handle presenting readings in descending tick order.
func (s *Series) ReverseSort() *Series {
	ret := s.derive()
	ret.descending = true
	return ret
}

// SliceByTickRange returns the readings with low <= tick <= high.
func (s *Series) SliceByTickRange(low, high int64) *Series {
	sorted := s.Sorted()
	from := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Tick >= low
	})
	to := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Tick > high
	})
	ret := New(s.name, s.labels)
	if from >= to {
		return ret
	}
	ret.readings = slices.Clone(sorted[from:to])
	ret.tip.length = len(ret.readings)
	ret.kind = s.kind
	ret.heterogeneous = s.heterogeneous
	ret.ordered = true
	return ret
}

// ValueKind reports the kind of the first reading, and whether other kinds were mixed in.
func (s *Series) ValueKind() (kind values.Kind, heterogeneous bool) {
	return s.kind, s.heterogeneous
}

func (s *Series) Ticks() []int64 {
	readings := s.Readings()
	ret := make([]int64, len(readings))
	for i, r := range readings {
		ret[i] = r.Tick
	}
	return ret
}

func (s *Series) Values() []values.Value {
	readings := s.Readings()
	ret := make([]values.Value, len(readings))
	for i, r := range readings {
		ret[i] = r.Value
	}
	return ret
}

func (s *Series) String() string {
	var sb strings.Builder
	sb.WriteString(s.name)
	sb.WriteString("{")
	for i, k := range slices.Sorted(maps.Keys(s.labels)) {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(s.labels[k])
	}
	sb.WriteString("} [")
	for i, r := range s.Readings() {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(r.String())
	}
	sb.WriteString(" ]")
	return sb.String()
}
