package main

import (
	"fmt"
	"paperpulse/cmd/paperpulse/render"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
)

type SearchCmd struct {
	Text     string   `arg:"" optional:"" help:"Text to find in titles, authors and descriptions"`
	Genre    []string `short:"g" sep:"none" help:"Only this genre (repeatable, any match passes)"`
	Author   []string `short:"a" sep:"none" help:"Only this author (repeatable, any match passes)"`
	MinPrice string   `name:"min-price" help:"Lowest price to include"`
	MaxPrice string   `name:"max-price" help:"Highest price to include"`
	Rating   []string `short:"r" help:"Minimum rating (repeatable, any threshold passes)"`
	Format   []string `short:"f" help:"Only this format: hardcover, paperback or ebook (repeatable)"`
	Sort     string   `short:"s" help:"Sort order: relevance, price-asc, price-desc, rating or newest"`
	Link     string   `short:"l" help:"Start from a storefront link or query string"`
	Share    bool     `help:"Print a link that reproduces this search"`
	Compact  bool     `help:"One line per book"`
	JSON     bool     `name:"json" help:"Output as JSON"`
}

func (cmd *SearchCmd) Run(g *Globals) error {
	bounds, err := catalogBounds(g.Cat)
	if err != nil {
		return err
	}

	s, err := cmd.state(bounds)
	if err != nil {
		return err
	}

	for _, note := range cmd.clampNotes(s) {
		g.Log.Print(note)
		if !cmd.JSON {
			fmt.Fprintf(g.Out, "Note: %s\n", note)
		}
	}

	return writeResults(g, s, bounds, resultOptions{
		Compact: cmd.Compact,
		Share:   cmd.Share,
		JSON:    cmd.JSON,
	})
}

// state layers the flags over the link, or over the default state when no
// link was given. A flag replaces the link's value for the same facet.
func (cmd *SearchCmd) state(bounds catalog.PriceRange) (query.State, error) {
	s := query.New(bounds)
	if cmd.Link != "" {
		var err error
		if s, err = query.ParseLink(cmd.Link, bounds); err != nil {
			return query.State{}, fmt.Errorf("bad link: %w", err)
		}
	}

	if cmd.Text != "" {
		s = s.WithText(cmd.Text)
	}
	if len(cmd.Genre) > 0 {
		s = s.WithGenres(cmd.Genre...)
	}
	if len(cmd.Author) > 0 {
		s = s.WithAuthors(cmd.Author...)
	}
	if cmd.MinPrice != "" {
		p, err := query.ParsePrice(cmd.MinPrice)
		if err != nil {
			return query.State{}, err
		}
		s = s.WithMinPrice(p)
	}
	if cmd.MaxPrice != "" {
		p, err := query.ParsePrice(cmd.MaxPrice)
		if err != nil {
			return query.State{}, err
		}
		s = s.WithMaxPrice(p)
	}
	if len(cmd.Rating) > 0 {
		ratings := make([]float64, len(cmd.Rating))
		for i, raw := range cmd.Rating {
			r, err := query.ParseRating(raw)
			if err != nil {
				return query.State{}, err
			}
			ratings[i] = r
		}
		s = s.WithRatings(ratings...)
	}
	if len(cmd.Format) > 0 {
		formats := make([]catalog.Format, len(cmd.Format))
		for i, raw := range cmd.Format {
			f, err := catalog.ParseFormat(raw)
			if err != nil {
				return query.State{}, err
			}
			formats[i] = f
		}
		s = s.WithFormats(formats...)
	}
	if cmd.Sort != "" {
		mode, err := query.ParseSortMode(cmd.Sort)
		if err != nil {
			return query.State{}, err
		}
		s = s.WithSort(mode)
	}

	return s, nil
}

// clampNotes reports price flags that WithMinPrice or WithMaxPrice moved so
// the range stays ordered.
func (cmd *SearchCmd) clampNotes(s query.State) []string {
	var notes []string
	r := s.Facets.Price
	if v, err := query.ParsePrice(cmd.MinPrice); cmd.MinPrice != "" && err == nil && !v.Equal(r.Min) {
		notes = append(notes, fmt.Sprintf("min price %s is above the max price, using %s",
			render.FormatPrice(v), render.FormatPrice(r.Min)))
	}
	if v, err := query.ParsePrice(cmd.MaxPrice); cmd.MaxPrice != "" && err == nil && !v.Equal(r.Max) {
		notes = append(notes, fmt.Sprintf("max price %s is below the min price, using %s",
			render.FormatPrice(v), render.FormatPrice(r.Max)))
	}
	return notes
}
