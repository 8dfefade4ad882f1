package configs

import (
	"errors"
	"fmt"
	"iter"
)

// Configurable is a typed setting stored at a fixed path of the config files.
type Configurable interface {
	ConfigPath() string
}

// Lookup decodes the first value found at the path of T. It returns the zero T when no file sets it.
func Lookup[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigPath())
}

// First decodes the first value found at path. Invalid files or values panic, since settings are
// resolved while building a scope and there is no caller to return to.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(fmt.Errorf("config %s: %w", path, err))
	}
	return value
}

// All decodes every value found at path, in file order.
func All[T any](loader Loader, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value, err := range loader.IterCueValues(path) {
			var v T
			if err == nil {
				err = value.Decode(&v)
			}
			if err != nil {
				yield(v, fmt.Errorf("config %s: %w", path, err))
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
