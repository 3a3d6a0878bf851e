package render

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	star          = "★"
	metaSeparator = " · "
	dateLayout    = "Jan 2, 2006"
)

type LipglossRenderer struct {
	width int
	r     *lipgloss.Renderer

	titleStyle lipgloss.Style
	priceStyle lipgloss.Style
	metaStyle  lipgloss.Style
	starStyle  lipgloss.Style
	descStyle  lipgloss.Style
	hintStyle  lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:      width,
		r:          r,
		titleStyle: r.NewStyle().Bold(true),
		priceStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		metaStyle:  r.NewStyle().Faint(true),
		starStyle:  r.NewStyle().Foreground(lipgloss.Color("11")),
		descStyle:  r.NewStyle(),
		hintStyle:  r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) RenderBookList(view BookListView) string {
	if view.IsEmpty() {
		return r.titleStyle.Render("No books found") + "\n" +
			r.hintStyle.Render("Try adjusting your search or filters") + "\n"
	}

	var sb strings.Builder
	for i, item := range view.Items {
		if view.Compact {
			sb.WriteString(r.renderLine(item))
			sb.WriteString("\n")
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.renderCard(item))
	}
	return sb.String()
}

func (r *LipglossRenderer) renderCard(item BookListItem) string {
	lines := []string{
		r.alignRight(r.titleStyle.Render(item.Title), r.priceStyle.Render(FormatPrice(item.Price))),
		r.metaStyle.Render("  " + strings.Join([]string{item.Author, item.Genre, item.Format}, metaSeparator)),
		"  " + r.renderRating(item),
	}
	if item.Description != "" {
		lines = append(lines, r.descStyle.Render("  "+item.Description))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (r *LipglossRenderer) renderLine(item BookListItem) string {
	left := r.titleStyle.Render(item.Title) + r.metaStyle.Render(" by "+item.Author)
	return r.alignRight(left, r.priceStyle.Render(FormatPrice(item.Price)))
}

func (r *LipglossRenderer) renderRating(item BookListItem) string {
	s := r.starStyle.Render(Stars(item.Rating)) + " " +
		strconv.FormatFloat(item.Rating, 'f', -1, 64) +
		r.metaStyle.Render(" ("+humanize.Comma(int64(item.Reviews))+")")
	if !item.Published.IsZero() {
		s += r.metaStyle.Render(metaSeparator + item.Published.Format(dateLayout))
	}
	return s
}

func (r *LipglossRenderer) alignRight(left, right string) string {
	padding := max(1, r.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", padding) + right
}

func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}

// Stars draws the rating rounded to whole stars.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	return strings.Repeat(star, max(0, n))
}
