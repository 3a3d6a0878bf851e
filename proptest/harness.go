package proptest

import (
	"fmt"
	"os"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

const (
	minBooks        = 0
	maxBooks        = 20
	typicalMinBooks = 1
	typicalMaxBooks = 12
)

type BookGenOpt func(*bookGenConfig)

type bookGenConfig struct {
	genre  *string
	format *catalog.Format
}

func WithGenre(genre string) BookGenOpt {
	return func(c *bookGenConfig) {
		c.genre = &genre
	}
}

func WithFormat(format catalog.Format) BookGenOpt {
	return func(c *bookGenConfig) {
		c.format = &format
	}
}

// GenBook draws a valid book. Titles, authors and genres come from small
// pools so that text and facet queries hit often.
func GenBook(t *rapid.T, id string, opts ...BookGenOpt) catalog.Book {
	cfg := &bookGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	genre := rapid.SampledFrom(genrePool).Draw(t, "genre")
	if cfg.genre != nil {
		genre = *cfg.genre
	}
	format := rapid.SampledFrom(catalog.Formats).Draw(t, "format")
	if cfg.format != nil {
		format = *cfg.format
	}

	b := catalog.NewBook(titleGen().Draw(t, "title"), rapid.SampledFrom(authorPool).Draw(t, "author")).
		WithGenre(genre).
		WithPrice(priceGen().Draw(t, "price")).
		WithRating(ratingGen().Draw(t, "rating"), rapid.IntRange(0, maxReviews).Draw(t, "reviews")).
		WithFormat(format).
		WithDescription(descriptionGen().Draw(t, "description")).
		WithPublishDate(publishDateGen().Draw(t, "publishDate"))
	b.ID = id
	return b
}

func GenBooks(t *rapid.T, minCount, maxCount int) []catalog.Book {
	n := rapid.IntRange(minCount, maxCount).Draw(t, "numBooks")
	books := make([]catalog.Book, n)
	for i := range books {
		books[i] = GenBook(t, fmt.Sprintf("b%02d", i))
	}
	return books
}

type Harness struct {
	T   *rapid.T
	Dir string
}

type CatalogHarness struct {
	Harness
	Catalog *catalog.Catalog
	// Bounds is the zero range for an empty catalog.
	Bounds catalog.PriceRange
}

func (h *CatalogHarness) Books() []catalog.Book {
	return h.Catalog.Books()
}

func (h *CatalogHarness) GenState() query.State {
	return stateGen(h.Catalog.Books(), h.Bounds).Draw(h.T, "state")
}

func newCatalogHarness(rt *rapid.T, dir string, minCount, maxCount int) *CatalogHarness {
	cat, err := catalog.New(GenBooks(rt, minCount, maxCount))
	if err != nil {
		rt.Fatalf("generated catalog rejected: %v", err)
	}
	bounds, err := cat.PriceBounds()
	if err != nil && cat.Count() > 0 {
		rt.Fatalf("PriceBounds: %v", err)
	}
	return &CatalogHarness{
		Harness: Harness{T: rt, Dir: dir},
		Catalog: cat,
		Bounds:  bounds,
	}
}

func RunWithCatalog(t *testing.T, fn func(h *CatalogHarness)) {
	RunWithCatalogSize(t, typicalMinBooks, typicalMaxBooks, fn)
}

func RunWithCatalogSize(t *testing.T, minCount, maxCount int, fn func(h *CatalogHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		fn(newCatalogHarness(rt, filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir")), minCount, maxCount))
	})
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		fn(&Harness{
			T:   rt,
			Dir: iterDir,
		})
	})
}
