package main

import (
	"errors"
	"fmt"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
	"paperpulse/internal/ui"
	"strings"

	"github.com/charmbracelet/huh"
)

type BrowseCmd struct {
	Compact bool `help:"One line per book"`
	Share   bool `help:"Print a link that reproduces the chosen filters"`
}

// browseAnswers holds the raw form values before they become a query state.
type browseAnswers struct {
	Text     string
	Genres   []string
	Authors  []string
	MinPrice string
	MaxPrice string
	Ratings  []float64
	Formats  []catalog.Format
	Sort     query.SortMode
}

func (cmd *BrowseCmd) Run(g *Globals) error {
	bounds, err := catalogBounds(g.Cat)
	if err != nil {
		return err
	}

	answers := browseAnswers{Sort: query.SortRelevance}
	if err := browseForm(g.Cat, bounds, &answers).Run(); err != nil {
		return handleBrowseFormError(err)
	}

	s, err := answers.state(bounds)
	if err != nil {
		return err
	}

	renderBrowseSummary(g, s, bounds)
	return writeResults(g, s, bounds, resultOptions{Compact: cmd.Compact, Share: cmd.Share})
}

func browseForm(cat *catalog.Catalog, bounds catalog.PriceRange, a *browseAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Description("Title, author or description").
				Value(&a.Text),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Genres").
				Options(huh.NewOptions(cat.Genres()...)...).
				Value(&a.Genres),
			huh.NewMultiSelect[string]().
				Title("Authors").
				Options(huh.NewOptions(cat.Authors()...)...).
				Value(&a.Authors),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Min price").
				Placeholder(bounds.Min.StringFixed(2)).
				Value(&a.MinPrice).
				Validate(validatePriceInput),
			huh.NewInput().
				Title("Max price").
				Placeholder(bounds.Max.StringFixed(2)).
				Value(&a.MaxPrice).
				Validate(validatePriceInput),
			huh.NewMultiSelect[float64]().
				Title("Rating").
				Options(ratingOptions()...).
				Value(&a.Ratings),
			huh.NewMultiSelect[catalog.Format]().
				Title("Format").
				Options(formatOptions(cat.Formats())...).
				Value(&a.Formats),
		),
		huh.NewGroup(
			huh.NewSelect[query.SortMode]().
				Title("Sort by").
				Options(sortOptions()...).
				Value(&a.Sort),
		),
	).WithTheme(ui.WizardTheme())
}

func ratingOptions() []huh.Option[float64] {
	opts := make([]huh.Option[float64], len(query.RatingThresholds))
	for i, t := range query.RatingThresholds {
		opts[i] = huh.NewOption(query.RatingLabel(t), t)
	}
	return opts
}

func formatOptions(formats []catalog.Format) []huh.Option[catalog.Format] {
	opts := make([]huh.Option[catalog.Format], len(formats))
	for i, f := range formats {
		opts[i] = huh.NewOption(f.Label(), f)
	}
	return opts
}

func sortOptions() []huh.Option[query.SortMode] {
	opts := make([]huh.Option[query.SortMode], len(query.SortModes))
	for i, m := range query.SortModes {
		opts[i] = huh.NewOption(m.Label(), m)
	}
	return opts
}

func validatePriceInput(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := query.ParsePrice(raw); err != nil {
		return errors.New("Enter a price like 14.99")
	}
	return nil
}

func (a browseAnswers) state(bounds catalog.PriceRange) (query.State, error) {
	s := query.New(bounds).
		WithText(strings.TrimSpace(a.Text)).
		WithGenres(a.Genres...).
		WithAuthors(a.Authors...).
		WithRatings(a.Ratings...).
		WithFormats(a.Formats...).
		WithSort(a.Sort)

	if strings.TrimSpace(a.MinPrice) != "" {
		p, err := query.ParsePrice(a.MinPrice)
		if err != nil {
			return query.State{}, err
		}
		s = s.WithMinPrice(p)
	}
	if strings.TrimSpace(a.MaxPrice) != "" {
		p, err := query.ParsePrice(a.MaxPrice)
		if err != nil {
			return query.State{}, err
		}
		s = s.WithMaxPrice(p)
	}
	return s, nil
}

func handleBrowseFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func renderBrowseSummary(g *Globals, s query.State, bounds catalog.PriceRange) {
	f := s.Facets
	fields := []ui.Field{
		{Label: "Search", Value: s.Text},
		{Label: "Genres", Value: ui.JoinValues(f.Genres.Items())},
		{Label: "Authors", Value: ui.JoinValues(f.Authors.Items())},
		{Label: "Price", Value: f.Price.String()},
		{Label: "Rating", Value: ui.JoinValues(ratingLabels(f.Ratings.Items()))},
		{Label: "Format", Value: ui.JoinValues(formatLabels(f.Formats.Items()))},
		{Label: "Sort", Value: s.Sort.Label()},
	}
	title := "Browse the catalog"
	if s.IsFiltered(bounds) {
		title += " (filtered)"
	}
	fmt.Fprint(g.Out, ui.RenderWizard(title, fields))
	fmt.Fprintln(g.Out)
}
