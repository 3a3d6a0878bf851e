package proptest

import (
	"fmt"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

const (
	maxCents   = 6000
	priceSlack = 500
	maxReviews = 100000
	minYear    = 1990
	yearSpan   = 35
	maxPicked  = 3
)

var (
	iterDirGen = rapid.StringMatching(`[a-z]{8}`)

	titleWords  = []string{"the", "midnight", "library", "silent", "sun", "winds", "club", "habits", "murder", "night"}
	authorPool  = []string{"Matt Haig", "Tara Westover", "Andy Weir", "C.L. Polk", "Richard Osman", "andy weir"}
	genrePool   = []string{"Fiction", "Mystery", "Memoir", "Fantasy", "Science Fiction", "fiction"}
	descWords   = []string{"a", "novel", "about", "the", "night", "sun", "friends", "magic", "club"}
	textWords   = slices.Concat(titleWords, []string{"weir", "osman", "zzz"})
	sortChoices = slices.Concat(query.SortModes, []query.SortMode{"bestselling"})
)

func randomCase(t *rapid.T, s, label string) string {
	switch rapid.IntRange(0, 2).Draw(t, label) {
	case 1:
		return strings.ToUpper(s)
	case 2:
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return s
}

func titleGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		words := rapid.SliceOfN(rapid.SampledFrom(titleWords), 1, 3).Draw(t, "titleWords")
		for i, w := range words {
			words[i] = randomCase(t, w, "titleCase")
		}
		return strings.Join(words, " ")
	})
}

func descriptionGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.Custom(func(t *rapid.T) string {
			return strings.Join(rapid.SliceOfN(rapid.SampledFrom(descWords), 1, 6).Draw(t, "descWords"), " ")
		}),
	)
}

func priceGen() *rapid.Generator[decimal.Decimal] {
	return rapid.Custom(func(t *rapid.T) decimal.Decimal {
		return decimal.New(int64(rapid.IntRange(0, maxCents).Draw(t, "cents")), -2)
	})
}

// ratingGen yields tenths, as storefront ratings are published.
func ratingGen() *rapid.Generator[float64] {
	return rapid.Custom(func(t *rapid.T) float64 {
		return float64(rapid.IntRange(0, 50).Draw(t, "ratingTenths")) / 10
	})
}

func publishDateGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.Custom(func(t *rapid.T) string {
			return fmt.Sprintf("%04d-%02d-%02d",
				minYear+rapid.IntRange(0, yearSpan).Draw(t, "year"),
				rapid.IntRange(1, 12).Draw(t, "month"),
				rapid.IntRange(1, 28).Draw(t, "day"))
		}),
	)
}

func textGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.Just("   "),
		wordTextGen(),
	)
}

// wordTextGen yields a word prefix, sometimes padded with whitespace.
func wordTextGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		w := rapid.SampledFrom(textWords).Draw(t, "textWord")
		if n := rapid.IntRange(1, len(w)).Draw(t, "prefixLen"); n < len(w) {
			w = w[:n]
		}
		pad := rapid.SampledFrom([]string{"", " ", "\t"}).Draw(t, "pad")
		return pad + randomCase(t, w, "textCase") + pad
	})
}

// pick draws a subset of pool, occasionally including a value nobody has.
func pick(t *rapid.T, pool []string, stranger, label string) []string {
	if len(pool) == 0 {
		return nil
	}
	picked := rapid.SliceOfNDistinct(rapid.SampledFrom(pool), 0, min(maxPicked, len(pool)), rapid.ID[string]).Draw(t, label)
	if rapid.IntRange(0, 9).Draw(t, label+"Stranger") == 0 {
		picked = append(picked, stranger)
	}
	return picked
}

func priceRangeGen(bounds catalog.PriceRange) *rapid.Generator[catalog.PriceRange] {
	return rapid.OneOf(
		rapid.Just(bounds),
		rapid.Custom(func(t *rapid.T) catalog.PriceRange {
			lo := decimal.New(int64(rapid.IntRange(0, maxCents+priceSlack).Draw(t, "loCents")), -2)
			hi := decimal.New(int64(rapid.IntRange(0, maxCents+priceSlack).Draw(t, "hiCents")), -2)
			return catalog.NewPriceRange(lo, hi)
		}),
	)
}

func ratingsGen() *rapid.Generator[[]float64] {
	return rapid.OneOf(
		rapid.SliceOfNDistinct(rapid.SampledFrom(query.RatingThresholds), 0, 2, rapid.ID[float64]),
		rapid.SliceOfN(ratingGen(), 0, 2),
	)
}

func formatsGen() *rapid.Generator[[]catalog.Format] {
	return rapid.SliceOfNDistinct(rapid.SampledFrom(catalog.Formats), 0, 2, rapid.ID[catalog.Format])
}

func sortGen() *rapid.Generator[query.SortMode] {
	return rapid.SampledFrom(sortChoices)
}

// stateGen builds a state through the public transitions only.
func stateGen(books []catalog.Book, bounds catalog.PriceRange) *rapid.Generator[query.State] {
	return rapid.Custom(func(t *rapid.T) query.State {
		return query.New(bounds).
			WithText(textGen().Draw(t, "text")).
			WithGenres(pick(t, catalog.DistinctGenres(books), "Poetry", "genres")...).
			WithAuthors(pick(t, catalog.DistinctAuthors(books), "Nobody", "authors")...).
			WithPriceRange(priceRangeGen(bounds).Draw(t, "price")).
			WithRatings(ratingsGen().Draw(t, "ratings")...).
			WithFormats(formatsGen().Draw(t, "formats")...).
			WithSort(sortGen().Draw(t, "sort"))
	})
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("}}}}"),
		rapid.Just("- - - -"),
		rapid.Just(":::"),
		rapid.Just("[\n["),
		rapid.Just("key: [unclosed"),
		rapid.Just("key: {unclosed"),
		rapid.Just("- item\n  bad indent"),
		rapid.Just("\t\ttabs: everywhere"),
		rapid.Just("version: \"unmatched quote"),
		rapid.Just("books:\n  - id: missing\n  title: value"),
		rapid.StringMatching(`[^a-zA-Z0-9\s]{10,50}`),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(10, 100).Draw(t, "size")
			bytes := make([]byte, size)
			for i := range bytes {
				bytes[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(bytes)
		}),
	)
}

// invalidBooksGen yields well-formed files whose records break a rule.
func invalidBooksGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("version: 1\nbooks:\n  - title: No ID\n    format: ebook\n"),
		rapid.Just("version: 1\nbooks:\n  - id: a\n    format: ebook\n"),
		rapid.Just("version: 1\nbooks:\n  - id: a\n    title: T\n    price: -1\n    format: ebook\n"),
		rapid.Just("version: 1\nbooks:\n  - id: a\n    title: T\n    rating: 5.5\n    format: ebook\n"),
		rapid.Just("version: 1\nbooks:\n  - id: a\n    title: T\n    format: audiobook\n"),
		rapid.Just("version: 1\nbooks:\n  - id: a\n    title: T\n    format: ebook\n    publish_date: \"2021-13-40\"\n"),
		rapid.Just("version: 1\nbooks:\n  - id: a\n    title: T\n    format: ebook\n  - id: a\n    title: U\n    format: ebook\n"),
		rapid.Just("books:\n  - id: a\n    title: T\n    format: ebook\n"),
	)
}

func extraFieldsGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		extraField := rapid.SampledFrom([]string{
			"unknown_field",
			"extra",
			"foo",
			"bar_baz",
			"randomField123",
		}).Draw(t, "fieldName")
		extraValue := rapid.SampledFrom([]string{
			"string_value",
			"123",
			"true",
			"[1, 2, 3]",
			"{nested: value}",
		}).Draw(t, "fieldValue")

		return fmt.Sprintf(`version: 1
%s: %s
books:
  - id: test-id
    title: Test Book
    author: Test Author
    genre: Fiction
    price: 12.50
    rating: 4.1
    reviews: 10
    format: paperback
    %s: %s
`, extraField, extraValue, extraField, extraValue)
	})
}

func invalidTypesGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(`version: "not_a_number"
books: []
`),
		rapid.Just(`version: 1
books:
  - id: test-id
    title: [not, a, string]
    format: ebook
`),
		rapid.Just(`version: 1
books:
  - id: test-id
    title: Test Book
    price: twelve
    format: ebook
`),
		rapid.Just(`version: 1
books:
  - id: test-id
    title: Test Book
    reviews: many
    format: ebook
`),
	)
}
