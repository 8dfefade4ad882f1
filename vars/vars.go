// Package vars holds small generic helpers for settings.
package vars

import "strings"

// FirstNonZero returns the first argument that is not the zero value, in precedence order.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

// StrToBool parses command line booleans. Unknown words are false.
func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
