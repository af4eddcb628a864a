package fleet

import "strings"

// Normalize produces the canonical membership key for an item name.
// Differently-cased or whitespace-variant spellings of the same item
// must collapse to one key.
func Normalize(name string) string {
	fields := strings.Fields(name)
	return strings.ToLower(strings.Join(fields, " "))
}
