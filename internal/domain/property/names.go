package property

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey normalises a phase name or milestone label for case-insensitive
// comparison
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NameIndex maps normalised names to their position in a slice
type NameIndex map[string]int

// NewNameIndex indexes items by NameKey(name(item)). The first occurrence of a
// key wins.
func NewNameIndex[T any](items []T, name func(T) string) NameIndex {
	index := make(NameIndex, len(items))
	for i, item := range items {
		key := NameKey(name(item))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}

// Lookup returns the position of the item whose name matches name
func (idx NameIndex) Lookup(name string) (int, bool) {
	i, ok := idx[NameKey(name)]
	return i, ok
}
