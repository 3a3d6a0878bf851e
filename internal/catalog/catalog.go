package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("book not found")
	ErrDuplicateID  = errors.New("book id already exists in catalog")
	ErrEmptyCatalog = errors.New("catalog has no books")
)

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func NewPriceRange(lo, hi decimal.Decimal) PriceRange {
	return PriceRange{Min: lo, Max: hi}
}

// Contains reports whether price lies in [Min, Max]. An inverted range
// contains nothing.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

func (r PriceRange) Equal(o PriceRange) bool {
	return r.Min.Equal(o.Min) && r.Max.Equal(o.Max)
}

func (r PriceRange) String() string {
	return fmt.Sprintf("$%s - $%s", r.Min.StringFixed(2), r.Max.StringFixed(2))
}

// Catalog is an immutable, ordered collection of books. It is safe for
// concurrent readers.
type Catalog struct {
	books []Book
	byID  map[string]int
}

func New(books []Book) (*Catalog, error) {
	c := &Catalog{
		books: make([]Book, 0, len(books)),
		byID:  make(map[string]int, len(books)),
	}

	for _, b := range books {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[b.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		c.byID[b.ID] = len(c.books)
		c.books = append(c.books, b)
	}

	return c, nil
}

// Books returns a copy of the records in catalog order.
func (c *Catalog) Books() []Book {
	return slices.Clone(c.books)
}

func (c *Catalog) Get(id string) (Book, error) {
	i, ok := c.byID[id]
	if !ok {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.books[i], nil
}

func (c *Catalog) Count() int {
	return len(c.books)
}

func (c *Catalog) Genres() []string {
	return DistinctGenres(c.books)
}

func (c *Catalog) Authors() []string {
	return DistinctAuthors(c.books)
}

func (c *Catalog) Formats() []Format {
	return DistinctFormats(c.books)
}

func (c *Catalog) PriceBounds() (PriceRange, error) {
	return PriceBounds(c.books)
}

func DistinctGenres(books []Book) []string {
	return distinct(books, func(b Book) string { return b.Genre })
}

func DistinctAuthors(books []Book) []string {
	return distinct(books, func(b Book) string { return b.Author })
}

func DistinctFormats(books []Book) []Format {
	return distinct(books, func(b Book) Format { return b.Format })
}

func PriceBounds(books []Book) (PriceRange, error) {
	if len(books) == 0 {
		return PriceRange{}, ErrEmptyCatalog
	}

	r := PriceRange{Min: books[0].Price, Max: books[0].Price}
	for _, b := range books[1:] {
		r.Min = decimal.Min(r.Min, b.Price)
		r.Max = decimal.Max(r.Max, b.Price)
	}
	return r, nil
}

func distinct[T ~string](books []Book, key func(Book) T) []T {
	seen := make(map[T]bool)
	var values []T
	for _, b := range books {
		v := key(b)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	slices.Sort(values)
	return values
}
