package main

import (
	"errors"
	"fmt"
	"paperpulse/internal/catalog"
	"paperpulse/internal/query"
	"strings"
	"text/tabwriter"
)

type FacetsCmd struct {
	Counts bool `help:"Show how many books carry each genre, author and format"`
}

func (cmd *FacetsCmd) Run(g *Globals) error {
	fmt.Fprintf(g.Out, "Catalog: %s (%d books)\n\n", g.Source, g.Cat.Count())

	bounds, err := g.Cat.PriceBounds()
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		fmt.Fprintln(g.Out, "No books in catalog.")
		return nil
	}
	if err != nil {
		return err
	}

	if cmd.Counts {
		return cmd.printCounts(g)
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Genres:\t%s\n", strings.Join(g.Cat.Genres(), ", "))
	fmt.Fprintf(w, "Authors:\t%s\n", strings.Join(g.Cat.Authors(), ", "))
	fmt.Fprintf(w, "Formats:\t%s\n", strings.Join(formatLabels(g.Cat.Formats()), ", "))
	fmt.Fprintf(w, "Price:\t%s\n", bounds)
	fmt.Fprintf(w, "Ratings:\t%s\n", strings.Join(ratingLabels(query.RatingThresholds), ", "))
	fmt.Fprintf(w, "Sort:\t%s\n", strings.Join(sortNames(), ", "))
	return w.Flush()
}

func (cmd *FacetsCmd) printCounts(g *Globals) error {
	books := g.Cat.Books()

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACET\tVALUE\tBOOKS")
	fmt.Fprintln(w, "-----\t-----\t-----")
	for _, genre := range g.Cat.Genres() {
		fmt.Fprintf(w, "genre\t%s\t%d\n", genre, countBooks(books, func(b catalog.Book) bool { return b.Genre == genre }))
	}
	for _, author := range g.Cat.Authors() {
		fmt.Fprintf(w, "author\t%s\t%d\n", author, countBooks(books, func(b catalog.Book) bool { return b.Author == author }))
	}
	for _, format := range g.Cat.Formats() {
		fmt.Fprintf(w, "format\t%s\t%d\n", format, countBooks(books, func(b catalog.Book) bool { return b.Format == format }))
	}
	return w.Flush()
}

func countBooks(books []catalog.Book, pred func(catalog.Book) bool) int {
	n := 0
	for _, b := range books {
		if pred(b) {
			n++
		}
	}
	return n
}

func sortNames() []string {
	names := make([]string, len(query.SortModes))
	for i, m := range query.SortModes {
		names[i] = string(m)
	}
	return names
}
