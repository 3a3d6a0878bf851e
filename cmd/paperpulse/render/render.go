package render

import (
	"time"

	"github.com/shopspring/decimal"
)

type Renderer interface {
	RenderBookList(view BookListView) string
}

type BookListView struct {
	Items []BookListItem
	// Compact renders one line per book instead of a card.
	Compact bool
}

type BookListItem struct {
	ID          string
	Title       string
	Author      string
	Genre       string
	Format      string
	Price       decimal.Decimal
	Rating      float64
	Reviews     int
	Description string
	Published   time.Time
}

func (v BookListView) IsEmpty() bool {
	return len(v.Items) == 0
}
