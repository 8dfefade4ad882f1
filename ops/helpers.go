package ops

import (
	"slices"

	"github.com/samber/lo"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
