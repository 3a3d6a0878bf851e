package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed sample_books.yaml
var sampleBooks []byte

// Sample returns the bundled storefront catalog.
func Sample() *Catalog {
	c, err := Parse(sampleBooks)
	if err != nil {
		panic(fmt.Sprintf("embedded sample catalog is invalid: %v", err))
	}
	return c
}
