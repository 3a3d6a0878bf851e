package query

import (
	"errors"
	"fmt"
	"paperpulse/internal/catalog"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownSort = errors.New("unknown sort mode")

type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortRating    SortMode = "rating"
	SortNewest    SortMode = "newest"
)

var SortModes = []SortMode{SortRelevance, SortPriceAsc, SortPriceDesc, SortRating, SortNewest}

func ParseSortMode(s string) (SortMode, error) {
	m := SortMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

func (m SortMode) Label() string {
	switch m {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortRating:
		return "Rating: Highest"
	case SortNewest:
		return "Newest First"
	default:
		return "Relevance"
	}
}

// RatingThresholds are the minimum ratings offered by the storefront.
var RatingThresholds = []float64{4.5, 4, 3.5, 3}

func RatingLabel(threshold float64) string {
	return strconv.FormatFloat(threshold, 'f', -1, 64) + "+ stars"
}

type Facets struct {
	Genres  Set[string]
	Authors Set[string]
	Price   catalog.PriceRange
	Ratings Set[float64]
	Formats Set[catalog.Format]
}

func DefaultFacets(bounds catalog.PriceRange) Facets {
	return Facets{Price: bounds}
}

// State is the current search text, facet selection and sort mode. Every
// transition returns a new State and leaves the receiver unchanged.
type State struct {
	Text   string
	Facets Facets
	Sort   SortMode
}

type Option func(*State)

func InitialText(text string) Option {
	return func(s *State) {
		s.Text = text
	}
}

func InitialFacets(f Facets) Option {
	return func(s *State) {
		s.Facets = f
	}
}

func InitialSort(mode SortMode) Option {
	return func(s *State) {
		s.Sort = mode
	}
}

// New returns the default state for a catalog whose prices span bounds.
func New(bounds catalog.PriceRange, opts ...Option) State {
	s := State{
		Facets: DefaultFacets(bounds),
		Sort:   SortRelevance,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithText stores text verbatim. Trimming happens when the query runs.
func (s State) WithText(text string) State {
	newS := s
	newS.Text = text
	return newS
}

func (s State) WithFacets(f Facets) State {
	newS := s
	newS.Facets = f
	return newS
}

// WithGenres selects genres. Empty strings are dropped: a link cannot carry
// them, so they could never survive sharing.
func (s State) WithGenres(genres ...string) State {
	newS := s
	newS.Facets.Genres = NewSet(withoutBlank(genres)...)
	return newS
}

func (s State) WithAuthors(authors ...string) State {
	newS := s
	newS.Facets.Authors = NewSet(withoutBlank(authors)...)
	return newS
}

func withoutBlank(values []string) []string {
	return slices.DeleteFunc(slices.Clone(values), func(v string) bool { return v == "" })
}

func (s State) WithPriceRange(r catalog.PriceRange) State {
	newS := s
	newS.Facets.Price = r
	return newS
}

// WithMinPrice moves the lower bound, never past the current upper bound.
func (s State) WithMinPrice(v decimal.Decimal) State {
	return s.WithPriceRange(catalog.NewPriceRange(decimal.Min(v, s.Facets.Price.Max), s.Facets.Price.Max))
}

// WithMaxPrice moves the upper bound, never below the current lower bound.
func (s State) WithMaxPrice(v decimal.Decimal) State {
	return s.WithPriceRange(catalog.NewPriceRange(s.Facets.Price.Min, decimal.Max(v, s.Facets.Price.Min)))
}

func (s State) WithRatings(thresholds ...float64) State {
	newS := s
	newS.Facets.Ratings = NewSet(thresholds...)
	return newS
}

func (s State) WithFormats(formats ...catalog.Format) State {
	newS := s
	newS.Facets.Formats = NewSet(formats...)
	return newS
}

func (s State) ToggleGenre(genre string) State {
	if genre == "" {
		return s
	}
	newS := s
	newS.Facets.Genres = s.Facets.Genres.Toggle(genre)
	return newS
}

func (s State) ToggleAuthor(author string) State {
	if author == "" {
		return s
	}
	newS := s
	newS.Facets.Authors = s.Facets.Authors.Toggle(author)
	return newS
}

func (s State) ToggleRating(threshold float64) State {
	newS := s
	newS.Facets.Ratings = s.Facets.Ratings.Toggle(threshold)
	return newS
}

func (s State) ToggleFormat(format catalog.Format) State {
	newS := s
	newS.Facets.Formats = s.Facets.Formats.Toggle(format)
	return newS
}

func (s State) WithSort(mode SortMode) State {
	newS := s
	newS.Sort = mode
	return newS
}

// ResetFacets clears every facet selection and restores the price range to
// bounds. Text and sort are kept.
func (s State) ResetFacets(bounds catalog.PriceRange) State {
	return s.WithFacets(DefaultFacets(bounds))
}

func (s State) ResetAll(bounds catalog.PriceRange) State {
	return New(bounds)
}

// IsFiltered reports whether any facet narrows the catalog. Search text does
// not count.
func (s State) IsFiltered(bounds catalog.PriceRange) bool {
	f := s.Facets
	return !f.Genres.IsEmpty() ||
		!f.Authors.IsEmpty() ||
		!f.Ratings.IsEmpty() ||
		!f.Formats.IsEmpty() ||
		!f.Price.Equal(bounds)
}
