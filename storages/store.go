// Package storages holds persisted series by name.
package storages

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/reusee/gtscript/gts"
)

var (
	ErrNotFound = errors.New("series not found")
	ErrReadOnly = errors.New("read-only transaction")
	ErrNoName   = errors.New("series has no name")
)

// Tx reads and writes series atomically.
type Tx interface {
	Get(name string) (*gts.Series, error)
	Put(series *gts.Series) error
	Names() []string
}

// Store is a shared series store. Series are held by reference and never mutated.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
}

type MemStore struct {
	mu     sync.RWMutex
	series map[string]*gts.Series
}

var _ Store = new(MemStore)

func NewMemStore() *MemStore {
	return &MemStore{
		series: make(map[string]*gts.Series),
	}
}

func (s *MemStore) View(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(memTx{
		series: s.series,
	})
}

// Update applies the writes of fn only when it returns nil.
func (s *MemStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := memTx{
		series:   s.series,
		writable: true,
		pending:  make(map[string]*gts.Series),
	}
	if err := fn(tx); err != nil {
		return err
	}
	maps.Copy(s.series, tx.pending)
	return nil
}

type memTx struct {
	series   map[string]*gts.Series
	writable bool
	pending  map[string]*gts.Series
}

func (t memTx) Get(name string) (*gts.Series, error) {
	if series, ok := t.pending[name]; ok {
		return series, nil
	}
	series, ok := t.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return series, nil
}

func (t memTx) Put(series *gts.Series) error {
	if !t.writable {
		return ErrReadOnly
	}
	if series.Name() == "" {
		return ErrNoName
	}
	t.pending[series.Name()] = series
	return nil
}

func (t memTx) Names() []string {
	names := slices.Collect(maps.Keys(t.series))
	for name := range t.pending {
		if _, ok := t.series[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
