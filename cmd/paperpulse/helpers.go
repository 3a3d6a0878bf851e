package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"paperpulse/cmd/paperpulse/render"
	"paperpulse/internal/catalog"
	"paperpulse/internal/config"
	"paperpulse/internal/query"
	"paperpulse/internal/search"
	"strconv"
	"strings"
)

const sampleSource = "embedded sample"

// openCatalog loads the configured catalog file. When no file was asked for
// and the default one does not exist yet, the embedded sample is used.
func openCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, string, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err == nil {
		logger.Printf("loaded %d books from %s", cat.Count(), cfg.CatalogPath)
		return cat, cfg.CatalogPath, nil
	}
	if !cfg.Explicit && errors.Is(err, fs.ErrNotExist) {
		logger.Printf("no catalog at %s, using the %s", cfg.CatalogPath, sampleSource)
		return catalog.Sample(), sampleSource, nil
	}
	return nil, "", err
}

// catalogBounds seeds the default price facet. An empty catalog has no
// bounds; the zero range is fine since there is nothing to filter.
func catalogBounds(cat *catalog.Catalog) (catalog.PriceRange, error) {
	bounds, err := cat.PriceBounds()
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		return catalog.PriceRange{}, nil
	}
	return bounds, err
}

type AmbiguousMatchError struct {
	Query   string
	Matches []catalog.Book
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple books match %q", e.Query)
}

func (e *AmbiguousMatchError) WriteMatches(w io.Writer) {
	fmt.Fprintln(w, "Multiple books match. Please be more specific:")
	for _, b := range e.Matches {
		fmt.Fprintf(w, "  - %s (%s) [%s]\n", b.Title, b.Author, b.ID)
	}
}

func handleFindError(w io.Writer, err error) bool {
	var ambErr *AmbiguousMatchError
	if errors.As(err, &ambErr) {
		ambErr.WriteMatches(w)
		return true
	}
	return false
}

// findBook resolves an exact ID first, then a unique case-insensitive title
// match.
func findBook(cat *catalog.Catalog, q string) (catalog.Book, error) {
	if b, err := cat.Get(q); err == nil {
		return b, nil
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	var matches []catalog.Book
	if needle != "" {
		for _, b := range cat.Books() {
			if strings.Contains(strings.ToLower(b.Title), needle) {
				matches = append(matches, b)
			}
		}
	}

	switch len(matches) {
	case 0:
		return catalog.Book{}, fmt.Errorf("%w: no book matching %q", catalog.ErrNotFound, q)
	case 1:
		return matches[0], nil
	default:
		return catalog.Book{}, &AmbiguousMatchError{Query: q, Matches: matches}
	}
}

func bookListView(books []catalog.Book, compact bool) render.BookListView {
	items := make([]render.BookListItem, len(books))
	for i, b := range books {
		published, _ := b.Published()
		items[i] = render.BookListItem{
			ID:          b.ID,
			Title:       b.Title,
			Author:      b.Author,
			Genre:       b.Genre,
			Format:      b.Format.Label(),
			Price:       b.Price,
			Rating:      b.Rating,
			Reviews:     b.Reviews,
			Description: b.Description,
			Published:   published,
		}
	}
	return render.BookListView{Items: items, Compact: compact}
}

// describeFilters lists the active facets in sidebar order.
func describeFilters(f query.Facets, bounds catalog.PriceRange) []string {
	var parts []string
	if !f.Genres.IsEmpty() {
		parts = append(parts, "genre: "+strings.Join(f.Genres.Items(), ", "))
	}
	if !f.Authors.IsEmpty() {
		parts = append(parts, "author: "+strings.Join(f.Authors.Items(), ", "))
	}
	if !f.Price.Equal(bounds) {
		parts = append(parts, "price: "+f.Price.String())
	}
	if !f.Ratings.IsEmpty() {
		parts = append(parts, "rating: "+strings.Join(ratingLabels(f.Ratings.Items()), ", "))
	}
	if !f.Formats.IsEmpty() {
		parts = append(parts, "format: "+strings.Join(formatLabels(f.Formats.Items()), ", "))
	}
	return parts
}

func ratingLabels(thresholds []float64) []string {
	labels := make([]string, len(thresholds))
	for i, t := range thresholds {
		labels[i] = strconv.FormatFloat(t, 'f', -1, 64) + "+"
	}
	return labels
}

func formatLabels(formats []catalog.Format) []string {
	labels := make([]string, len(formats))
	for i, f := range formats {
		labels[i] = f.Label()
	}
	return labels
}

// shareLink is the storefront query string that reproduces s.
func shareLink(s query.State, bounds catalog.PriceRange) string {
	return "?" + s.Values(bounds).Encode()
}

type searchResult struct {
	Link  string         `json:"link"`
	Count int            `json:"count"`
	Books []catalog.Book `json:"books"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type resultOptions struct {
	Compact bool
	Share   bool
	JSON    bool
}

// writeResults runs s against the catalog and prints the outcome.
func writeResults(g *Globals, s query.State, bounds catalog.PriceRange, opts resultOptions) error {
	results := search.Run(g.Cat.Books(), s)
	g.Log.Printf("query %s matched %d of %d books from %s",
		shareLink(s, bounds), len(results), g.Cat.Count(), g.Source)

	if opts.JSON {
		return writeJSON(g.Out, searchResult{
			Link:  shareLink(s, bounds),
			Count: len(results),
			Books: results,
		})
	}

	fmt.Fprintf(g.Out, "Found %d results\n", len(results))
	if s.IsFiltered(bounds) {
		fmt.Fprintf(g.Out, "Filters: %s\n", strings.Join(describeFilters(s.Facets, bounds), "; "))
	}
	if s.Sort != query.SortRelevance {
		fmt.Fprintf(g.Out, "Sorted by: %s\n", s.Sort.Label())
	}
	fmt.Fprintln(g.Out)
	fmt.Fprint(g.Out, g.Render.RenderBookList(bookListView(results, opts.Compact)))

	if opts.Share {
		fmt.Fprintf(g.Out, "\nShare: %s\n", shareLink(s, bounds))
	}
	return nil
}
