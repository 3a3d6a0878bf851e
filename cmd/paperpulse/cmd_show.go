package main

import (
	"fmt"
	"paperpulse/cmd/paperpulse/render"
	"paperpulse/internal/catalog"
	"strconv"

	"github.com/dustin/go-humanize"
)

type ShowCmd struct {
	ID   string `arg:"" help:"Book ID or part of its title"`
	JSON bool   `name:"json" help:"Output as JSON"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	book, err := findBook(g.Cat, cmd.ID)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if cmd.JSON {
		return writeJSON(g.Out, book)
	}

	writeBook(g, book)
	return nil
}

func writeBook(g *Globals, b catalog.Book) {
	fmt.Fprintf(g.Out, "Title:     %s\n", b.Title)
	fmt.Fprintf(g.Out, "Author:    %s\n", b.Author)
	fmt.Fprintf(g.Out, "Genre:     %s\n", b.Genre)
	fmt.Fprintf(g.Out, "Format:    %s\n", b.Format.Label())
	fmt.Fprintf(g.Out, "Price:     %s\n", render.FormatPrice(b.Price))
	fmt.Fprintf(g.Out, "Rating:    %s %s (%s reviews)\n",
		render.Stars(b.Rating), strconv.FormatFloat(b.Rating, 'f', -1, 64), humanize.Comma(int64(b.Reviews)))
	if t, ok := b.Published(); ok {
		fmt.Fprintf(g.Out, "Published: %s\n", t.Format("January 2, 2006"))
	}
	if b.ISBN != "" {
		fmt.Fprintf(g.Out, "ISBN:      %s\n", b.ISBN)
	}
	fmt.Fprintf(g.Out, "ID:        %s\n", b.ID)
	if b.Description != "" {
		fmt.Fprintf(g.Out, "\n%s\n", b.Description)
	}
}
