package refdata

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed data/jds.yaml
var embeddedData []byte

var (
	embeddedOnce  sync.Once
	embeddedStore *Store
	embeddedErr   error
)

// Embedded returns the reference data compiled into the binary.
// The document is parsed once; later calls share the same Store.
func Embedded() (*Store, error) {
	embeddedOnce.Do(func() {
		embeddedStore, embeddedErr = Parse(embeddedData)
		if embeddedErr != nil {
			embeddedErr = fmt.Errorf("embedded reference data: %w", embeddedErr)
		}
	})
	return embeddedStore, embeddedErr
}

// EmbeddedDocument returns a copy of the raw embedded document.
func EmbeddedDocument() []byte {
	return append([]byte(nil), embeddedData...)
}
