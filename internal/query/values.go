package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"paperpulse/internal/catalog"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice  = errors.New("invalid price")
	ErrInvalidRating = errors.New("rating threshold must be between 0 and 5")
)

// linkParams is the storefront query-string shape, e.g.
// ?q=midnight&genre=Fiction&genre=Fantasy&min=14&rating=4&sort=price-asc
type linkParams struct {
	Text     string   `schema:"q,omitempty"`
	Genres   []string `schema:"genre,omitempty"`
	Authors  []string `schema:"author,omitempty"`
	MinPrice string   `schema:"min,omitempty"`
	MaxPrice string   `schema:"max,omitempty"`
	Ratings  []string `schema:"rating,omitempty"`
	Formats  []string `schema:"format,omitempty"`
	Sort     string   `schema:"sort,omitempty"`
}

var (
	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// FromValues builds a state from link parameters. Parameters that are absent
// keep their defaults for a catalog spanning bounds.
func FromValues(values url.Values, bounds catalog.PriceRange) (State, error) {
	var p linkParams
	if err := decoder.Decode(&p, values); err != nil {
		return State{}, fmt.Errorf("failed to decode query: %w", err)
	}

	s := New(bounds).
		WithText(p.Text).
		WithGenres(p.Genres...).
		WithAuthors(p.Authors...)

	r := s.Facets.Price
	if p.MinPrice != "" {
		v, err := ParsePrice(p.MinPrice)
		if err != nil {
			return State{}, err
		}
		r.Min = v
	}
	if p.MaxPrice != "" {
		v, err := ParsePrice(p.MaxPrice)
		if err != nil {
			return State{}, err
		}
		r.Max = v
	}
	s = s.WithPriceRange(r)

	ratings := make([]float64, 0, len(p.Ratings))
	for _, raw := range p.Ratings {
		v, err := ParseRating(raw)
		if err != nil {
			return State{}, err
		}
		ratings = append(ratings, v)
	}
	s = s.WithRatings(ratings...)

	formats := make([]catalog.Format, 0, len(p.Formats))
	for _, raw := range p.Formats {
		f, err := catalog.ParseFormat(raw)
		if err != nil {
			return State{}, err
		}
		formats = append(formats, f)
	}
	s = s.WithFormats(formats...)

	mode, err := ParseSortMode(p.Sort)
	if err != nil {
		return State{}, err
	}
	return s.WithSort(mode), nil
}

// ParseLink accepts a bare query string or a full storefront URL.
func ParseLink(raw string, bounds catalog.PriceRange) (State, error) {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return State{}, fmt.Errorf("failed to parse link: %w", err)
	}
	return FromValues(values, bounds)
}

// Values encodes s as link parameters, omitting anything equal to its default.
func (s State) Values(bounds catalog.PriceRange) url.Values {
	f := s.Facets
	p := linkParams{
		Text:    s.Text,
		Genres:  f.Genres.Items(),
		Authors: f.Authors.Items(),
		Formats: make([]string, 0, f.Formats.Len()),
		Ratings: make([]string, 0, f.Ratings.Len()),
	}
	if !f.Price.Min.Equal(bounds.Min) {
		p.MinPrice = f.Price.Min.String()
	}
	if !f.Price.Max.Equal(bounds.Max) {
		p.MaxPrice = f.Price.Max.String()
	}
	for _, r := range f.Ratings.Items() {
		p.Ratings = append(p.Ratings, strconv.FormatFloat(r, 'f', -1, 64))
	}
	for _, fm := range f.Formats.Items() {
		p.Formats = append(p.Formats, string(fm))
	}
	if s.Sort != SortRelevance {
		p.Sort = string(s.Sort)
	}

	values := url.Values{}
	if err := encoder.Encode(&p, values); err != nil {
		// linkParams holds only strings, which always encode.
		panic(err)
	}
	return values
}

func ParsePrice(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if v.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, raw)
	}
	return v, nil
}

func ParseRating(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > catalog.MaxRating {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidRating, raw)
	}
	return v, nil
}
