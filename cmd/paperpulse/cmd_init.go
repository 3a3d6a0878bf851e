package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"paperpulse/internal/catalog"
	"paperpulse/internal/config"
	"paperpulse/internal/ui"
	"paperpulse/internal/util"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing catalog file"`
	Print bool `help:"Print the sample catalog instead of writing it"`
}

func (cmd *InitCmd) Run(g *Globals) error {
	sample := catalog.Sample()

	if cmd.Print {
		assert.Success(g.Out.Write(assert.Success(sample.Marshal())))
		return nil
	}

	path := g.Config.CatalogPath
	if _, err := os.Stat(path); err == nil && !cmd.Force {
		return fmt.Errorf("catalog already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := sample.Write(path); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	g.Log.Printf("wrote %d books to %s", sample.Count(), path)

	fmt.Fprint(g.Out, ui.RenderDone("Wrote sample catalog", config.ShortenPath(path), []string{
		fmt.Sprintf("%d books", sample.Count()),
		fmt.Sprintf("%d genres", len(sample.Genres())),
		fmt.Sprintf("%d authors", len(sample.Authors())),
	}))
	return nil
}
