package proptest

import (
	"maps"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
	"paperpulse/internal/search"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// modelMatches restates the filter rules straight from the book fields.
func modelMatches(b catalog.Book, s query.State) bool {
	if strings.TrimSpace(s.Text) != "" {
		text := strings.ToLower(s.Text)
		fields := []string{b.Title, b.Author}
		if b.Description != "" {
			fields = append(fields, b.Description)
		}
		if !slices.ContainsFunc(fields, func(f string) bool { return strings.Contains(strings.ToLower(f), text) }) {
			return false
		}
	}

	f := s.Facets
	if f.Genres.Len() > 0 && !slices.Contains(f.Genres.Items(), b.Genre) {
		return false
	}
	if f.Authors.Len() > 0 && !slices.Contains(f.Authors.Items(), b.Author) {
		return false
	}
	if b.Price.LessThan(f.Price.Min) || b.Price.GreaterThan(f.Price.Max) {
		return false
	}
	if f.Ratings.Len() > 0 && !slices.ContainsFunc(f.Ratings.Items(), func(t float64) bool { return b.Rating >= t }) {
		return false
	}
	if f.Formats.Len() > 0 && !slices.Contains(f.Formats.Items(), b.Format) {
		return false
	}
	return true
}

func modelFilter(books []catalog.Book, s query.State) []catalog.Book {
	var out []catalog.Book
	for _, b := range books {
		if modelMatches(b, s) {
			out = append(out, b)
		}
	}
	return out
}

// modelCompare orders a before b (-1), after (1) or ties (0). ISO dates
// compare correctly as strings; a missing date sorts last.
func modelCompare(a, b catalog.Book, mode query.SortMode) int {
	switch mode {
	case query.SortPriceAsc:
		return a.Price.Cmp(b.Price)
	case query.SortPriceDesc:
		return b.Price.Cmp(a.Price)
	case query.SortRating:
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return 0
	case query.SortNewest:
		switch {
		case a.PublishDate == b.PublishDate:
			return 0
		case a.PublishDate == "":
			return 1
		case b.PublishDate == "":
			return -1
		}
		return -strings.Compare(a.PublishDate, b.PublishDate)
	}
	return 0
}

// verifyRun checks a search result against the model for the given books.
func verifyRun(t *rapid.T, books []catalog.Book, s query.State, result []catalog.Book) {
	t.Helper()
	assertNoDuplicates(t, result)
	assertSameMembers(t, modelFilter(books, s), result)

	position := make(map[string]int, len(books))
	for i, b := range books {
		position[b.ID] = i
	}
	for i := 1; i < len(result); i++ {
		prev, cur := result[i-1], result[i]
		switch c := modelCompare(prev, cur, s.Sort); {
		case c > 0:
			t.Fatalf("[%s] violated: %q before %q under %s", InvResultSorted, prev.ID, cur.ID, s.Sort)
		case c == 0 && position[prev.ID] > position[cur.ID]:
			t.Fatalf("[%s] violated: tie %q and %q swapped under %s", InvTiesKeepCatalogOrder, prev.ID, cur.ID, s.Sort)
		}
	}
}

// QueryTracker mirrors query.State with plain maps.
type QueryTracker struct {
	text    string
	genres  map[string]bool
	authors map[string]bool
	ratings map[float64]bool
	formats map[catalog.Format]bool
	price   catalog.PriceRange
	sort    query.SortMode
}

func newQueryTracker(bounds catalog.PriceRange) *QueryTracker {
	m := &QueryTracker{}
	m.resetAll(bounds)
	return m
}

func toggle[K comparable](set map[K]bool, k K) {
	if set[k] {
		delete(set, k)
		return
	}
	set[k] = true
}

func setOf[K comparable](items []K) map[K]bool {
	set := make(map[K]bool, len(items))
	for _, k := range items {
		set[k] = true
	}
	return set
}

// namesOf is setOf for genre and author selections, which never hold "".
func namesOf(items []string) map[string]bool {
	set := setOf(items)
	delete(set, "")
	return set
}

func toggleName(set map[string]bool, name string) {
	if name != "" {
		toggle(set, name)
	}
}

func (m *QueryTracker) resetFacets(bounds catalog.PriceRange) {
	m.genres = map[string]bool{}
	m.authors = map[string]bool{}
	m.ratings = map[float64]bool{}
	m.formats = map[catalog.Format]bool{}
	m.price = bounds
}

func (m *QueryTracker) resetAll(bounds catalog.PriceRange) {
	m.resetFacets(bounds)
	m.text = ""
	m.sort = query.SortRelevance
}

func (m *QueryTracker) setMin(v decimal.Decimal) {
	if v.GreaterThan(m.price.Max) {
		v = m.price.Max
	}
	m.price.Min = v
}

func (m *QueryTracker) setMax(v decimal.Decimal) {
	if v.LessThan(m.price.Min) {
		v = m.price.Min
	}
	m.price.Max = v
}

func (m *QueryTracker) filtered(bounds catalog.PriceRange) bool {
	return len(m.genres) > 0 || len(m.authors) > 0 || len(m.ratings) > 0 ||
		len(m.formats) > 0 || !m.price.Equal(bounds)
}

func sortedKeys[K interface{ ~string | ~float64 }](set map[K]bool) []K {
	return slices.Sorted(maps.Keys(set))
}

// stateSnapshot is a deep, comparable copy of a State.
type stateSnapshot struct {
	Text    string
	Genres  []string
	Authors []string
	Ratings []float64
	Formats []catalog.Format
	Min     string
	Max     string
	Sort    query.SortMode
}

func snapshot(s query.State) stateSnapshot {
	return stateSnapshot{
		Text:    s.Text,
		Genres:  s.Facets.Genres.Items(),
		Authors: s.Facets.Authors.Items(),
		Ratings: s.Facets.Ratings.Items(),
		Formats: s.Facets.Formats.Items(),
		Min:     s.Facets.Price.Min.String(),
		Max:     s.Facets.Price.Max.String(),
		Sort:    s.Sort,
	}
}

func (m *QueryTracker) snapshot() stateSnapshot {
	return stateSnapshot{
		Text:    m.text,
		Genres:  sortedKeys(m.genres),
		Authors: sortedKeys(m.authors),
		Ratings: sortedKeys(m.ratings),
		Formats: sortedKeys(m.formats),
		Min:     m.price.Min.String(),
		Max:     m.price.Max.String(),
		Sort:    m.sort,
	}
}

// CheckedQuery drives a real State and the tracker in lockstep and
// verifies after every transition that they agree and that the previous
// state value was left untouched.
type CheckedQuery struct {
	real   query.State
	model  *QueryTracker
	books  []catalog.Book
	bounds catalog.PriceRange
	t      *rapid.T
}

func NewCheckedQuery(t *rapid.T, books []catalog.Book, bounds catalog.PriceRange) *CheckedQuery {
	return &CheckedQuery{
		real:   query.New(bounds),
		model:  newQueryTracker(bounds),
		books:  books,
		bounds: bounds,
		t:      t,
	}
}

func (c *CheckedQuery) State() query.State {
	return c.real
}

func (c *CheckedQuery) apply(name string, transition func(query.State) query.State, model func(*QueryTracker)) {
	prev := c.real
	before := snapshot(prev)

	c.real = transition(prev)
	model(c.model)

	if diff := cmp.Diff(before, snapshot(prev)); diff != "" {
		c.t.Fatalf("[%s] violated: %s mutated its receiver (-before +after):\n%s", InvTransitionsImmutable, name, diff)
	}
	c.Verify()
}

func (c *CheckedQuery) Verify() {
	if diff := cmp.Diff(c.model.snapshot(), snapshot(c.real)); diff != "" {
		c.t.Fatalf("[%s] violated (-model +real):\n%s", InvStateModelConsistent, diff)
	}
	if got, want := c.real.IsFiltered(c.bounds), c.model.filtered(c.bounds); got != want {
		c.t.Fatalf("[%s] violated: IsFiltered=%v, model says %v", InvIsFilteredConsistent, got, want)
	}
}

func (c *CheckedQuery) SetText(text string) {
	c.apply("WithText", func(s query.State) query.State { return s.WithText(text) },
		func(m *QueryTracker) { m.text = text })
}

func (c *CheckedQuery) SetGenres(genres []string) {
	c.apply("WithGenres", func(s query.State) query.State { return s.WithGenres(genres...) },
		func(m *QueryTracker) { m.genres = namesOf(genres) })
}

func (c *CheckedQuery) ToggleGenre(genre string) {
	c.apply("ToggleGenre", func(s query.State) query.State { return s.ToggleGenre(genre) },
		func(m *QueryTracker) { toggleName(m.genres, genre) })
}

func (c *CheckedQuery) ToggleAuthor(author string) {
	c.apply("ToggleAuthor", func(s query.State) query.State { return s.ToggleAuthor(author) },
		func(m *QueryTracker) { toggleName(m.authors, author) })
}

func (c *CheckedQuery) ToggleRating(threshold float64) {
	c.apply("ToggleRating", func(s query.State) query.State { return s.ToggleRating(threshold) },
		func(m *QueryTracker) { toggle(m.ratings, threshold) })
}

func (c *CheckedQuery) ToggleFormat(format catalog.Format) {
	c.apply("ToggleFormat", func(s query.State) query.State { return s.ToggleFormat(format) },
		func(m *QueryTracker) { toggle(m.formats, format) })
}

func (c *CheckedQuery) SetPriceRange(r catalog.PriceRange) {
	c.apply("WithPriceRange", func(s query.State) query.State { return s.WithPriceRange(r) },
		func(m *QueryTracker) { m.price = r })
}

func (c *CheckedQuery) SetMinPrice(v decimal.Decimal) {
	c.apply("WithMinPrice", func(s query.State) query.State { return s.WithMinPrice(v) },
		func(m *QueryTracker) { m.setMin(v) })
}

func (c *CheckedQuery) SetMaxPrice(v decimal.Decimal) {
	c.apply("WithMaxPrice", func(s query.State) query.State { return s.WithMaxPrice(v) },
		func(m *QueryTracker) { m.setMax(v) })
}

func (c *CheckedQuery) SetSort(mode query.SortMode) {
	c.apply("WithSort", func(s query.State) query.State { return s.WithSort(mode) },
		func(m *QueryTracker) { m.sort = mode })
}

func (c *CheckedQuery) ResetFacets() {
	c.apply("ResetFacets", func(s query.State) query.State { return s.ResetFacets(c.bounds) },
		func(m *QueryTracker) { m.resetFacets(c.bounds) })
}

func (c *CheckedQuery) ResetAll() {
	c.apply("ResetAll", func(s query.State) query.State { return s.ResetAll(c.bounds) },
		func(m *QueryTracker) { m.resetAll(c.bounds) })
}

func (c *CheckedQuery) Run() []catalog.Book {
	result := search.Run(c.books, c.real)
	verifyRun(c.t, c.books, c.real, result)
	return result
}
