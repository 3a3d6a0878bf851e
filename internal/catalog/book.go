package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyID         = errors.New("book id cannot be empty")
	ErrEmptyTitle      = errors.New("book title cannot be empty")
	ErrNegativePrice   = errors.New("book price cannot be negative")
	ErrRatingRange     = errors.New("book rating must be between 0 and 5")
	ErrNegativeReviews = errors.New("book review count cannot be negative")
	ErrUnknownFormat   = errors.New("unknown book format")
	ErrInvalidDate     = errors.New("publish date must be YYYY-MM-DD")
)

const DateLayout = "2006-01-02"

const MaxRating = 5.0

type Format string

const (
	FormatHardcover Format = "hardcover"
	FormatPaperback Format = "paperback"
	FormatEbook     Format = "ebook"
)

var Formats = []Format{FormatEbook, FormatHardcover, FormatPaperback}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) Valid() bool {
	switch f {
	case FormatHardcover, FormatPaperback, FormatEbook:
		return true
	}
	return false
}

func (f Format) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

type Book struct {
	ID          string          `yaml:"id" json:"id"`
	Title       string          `yaml:"title" json:"title"`
	Author      string          `yaml:"author" json:"author"`
	Genre       string          `yaml:"genre" json:"genre"`
	Price       decimal.Decimal `yaml:"price" json:"price"`
	Rating      float64         `yaml:"rating" json:"rating"`
	Reviews     int             `yaml:"reviews" json:"reviews"`
	Format      Format          `yaml:"format" json:"format"`
	Image       string          `yaml:"image,omitempty" json:"image,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	ISBN        string          `yaml:"isbn,omitempty" json:"isbn,omitempty"`
	PublishDate string          `yaml:"publish_date,omitempty" json:"publishDate,omitempty"`
}

func NewBook(title, author string) Book {
	return Book{
		ID:     uuid.New().String(),
		Title:  title,
		Author: author,
		Format: FormatPaperback,
	}
}

func (b Book) WithGenre(genre string) Book {
	newB := b
	newB.Genre = genre
	return newB
}

func (b Book) WithPrice(price decimal.Decimal) Book {
	newB := b
	newB.Price = price
	return newB
}

func (b Book) WithRating(rating float64, reviews int) Book {
	newB := b
	newB.Rating = rating
	newB.Reviews = reviews
	return newB
}

func (b Book) WithFormat(format Format) Book {
	newB := b
	newB.Format = format
	return newB
}

func (b Book) WithDescription(description string) Book {
	newB := b
	newB.Description = description
	return newB
}

func (b Book) WithPublishDate(date string) Book {
	newB := b
	newB.PublishDate = date
	return newB
}

// Published reports the parsed publish date. ok is false when the date is
// absent or cannot be parsed.
func (b Book) Published() (t time.Time, ok bool) {
	if b.PublishDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, b.PublishDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: id %s", ErrEmptyTitle, b.ID)
	}
	if b.Price.IsNegative() {
		return fmt.Errorf("%w: %q costs %s", ErrNegativePrice, b.Title, b.Price)
	}
	if b.Rating < 0 || b.Rating > MaxRating {
		return fmt.Errorf("%w: %q rated %g", ErrRatingRange, b.Title, b.Rating)
	}
	if b.Reviews < 0 {
		return fmt.Errorf("%w: %q has %d", ErrNegativeReviews, b.Title, b.Reviews)
	}
	if !b.Format.Valid() {
		return fmt.Errorf("%w: %q for %q", ErrUnknownFormat, b.Format, b.Title)
	}
	if b.PublishDate != "" {
		if _, err := time.Parse(DateLayout, b.PublishDate); err != nil {
			return fmt.Errorf("%w: got %q for %q", ErrInvalidDate, b.PublishDate, b.Title)
		}
	}
	return nil
}
