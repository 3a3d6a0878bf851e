// Package search derives the displayed book list from a catalog and a query
// state. Everything here is a pure function of its arguments.
package search

import (
	"cmp"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
	"slices"
	"strings"
)

// Run filters books by every active stage of s and orders the survivors by
// s.Sort. The input slice is not modified.
func Run(books []catalog.Book, s query.State) []catalog.Book {
	m := newMatcher(s)

	results := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if m.matches(b) {
			results = append(results, b)
		}
	}

	sortBooks(results, s.Sort)
	return results
}

// Matches reports whether b survives every active filter stage of s.
func Matches(b catalog.Book, s query.State) bool {
	return newMatcher(s).matches(b)
}

type matcher struct {
	text    string
	hasText bool
	f       query.Facets
}

// newMatcher lower-cases the search text as typed. Trimming only decides
// whether the text stage runs; surrounding spaces stay part of the needle.
func newMatcher(s query.State) matcher {
	return matcher{
		text:    strings.ToLower(s.Text),
		hasText: strings.TrimSpace(s.Text) != "",
		f:       s.Facets,
	}
}

// matches applies the stages in order: text, genre, author, price, rating,
// format. Empty selections are skipped; price always applies.
func (m matcher) matches(b catalog.Book) bool {
	if m.hasText && !matchesText(b, m.text) {
		return false
	}
	if !m.f.Genres.IsEmpty() && !m.f.Genres.Has(b.Genre) {
		return false
	}
	if !m.f.Authors.IsEmpty() && !m.f.Authors.Has(b.Author) {
		return false
	}
	if !m.f.Price.Contains(b.Price) {
		return false
	}
	if !m.f.Ratings.IsEmpty() && !meetsAnyThreshold(b.Rating, m.f.Ratings) {
		return false
	}
	if !m.f.Formats.IsEmpty() && !m.f.Formats.Has(b.Format) {
		return false
	}
	return true
}

func matchesText(b catalog.Book, text string) bool {
	if strings.Contains(strings.ToLower(b.Title), text) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Author), text) {
		return true
	}
	return b.Description != "" && strings.Contains(strings.ToLower(b.Description), text)
}

func meetsAnyThreshold(rating float64, thresholds query.Set[float64]) bool {
	return thresholds.Any(func(t float64) bool {
		return rating >= t
	})
}

func sortBooks(books []catalog.Book, mode query.SortMode) {
	compare := comparator(mode)
	if compare == nil {
		return
	}
	slices.SortStableFunc(books, compare)
}

// comparator is the single dispatch point for sort modes. Relevance and
// unknown modes return nil, meaning catalog order is kept.
func comparator(mode query.SortMode) func(a, b catalog.Book) int {
	switch mode {
	case query.SortPriceAsc:
		return func(a, b catalog.Book) int { return a.Price.Cmp(b.Price) }
	case query.SortPriceDesc:
		return func(a, b catalog.Book) int { return b.Price.Cmp(a.Price) }
	case query.SortRating:
		return func(a, b catalog.Book) int { return cmp.Compare(b.Rating, a.Rating) }
	case query.SortNewest:
		return compareNewest
	default:
		return nil
	}
}

// compareNewest orders later publish dates first. A missing date counts as
// the earliest possible date.
func compareNewest(a, b catalog.Book) int {
	ta, okA := a.Published()
	tb, okB := b.Published()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return tb.Compare(ta)
}
