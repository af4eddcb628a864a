package fleet

import (
	_ "embed"
	"encoding/json"
)

//go:embed catalog.json
var defaultCatalog []byte

// DefaultIndex returns the index built from the embedded catalog.
func DefaultIndex() *Index {
	var doc Document
	if err := json.Unmarshal(defaultCatalog, &doc); err != nil {
		panic("fleet: embedded catalog invalid: " + err.Error())
	}
	ix, err := NewIndex(doc)
	if err != nil {
		panic("fleet: embedded catalog invalid: " + err.Error())
	}
	return ix
}
