package main

import (
	"fmt"
	"os"
	"paperpulse/cmd/paperpulse/render"
	"paperpulse/internal/config"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Search SearchCmd `cmd:"" aliases:"s" help:"Search and filter the catalog"`
	Show   ShowCmd   `cmd:"" help:"Show book details"`
	Facets FacetsCmd `cmd:"" aliases:"f" help:"List the genres, authors, formats and prices in the catalog"`
	Browse BrowseCmd `cmd:"" aliases:"b" help:"Pick filters interactively and browse the results"`
	Init   InitCmd   `cmd:"" help:"Write the sample catalog to the catalog path"`

	CatalogPath string `name:"catalog" short:"c" help:"Path to catalog file (default: $PAPERPULSE_CATALOG or the XDG data dir)"`
	Verbose     bool   `short:"v" help:"Log diagnostics to stderr"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	logger := newLogger(os.Stderr, c.Verbose)

	cfg, err := config.Load(c.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Printf("catalog path: %s", cfg.CatalogPath)

	globals := &Globals{
		Config: cfg,
		Out:    os.Stdout,
		Render: render.NewLipglossRendererAuto(os.Stdout),
		Log:    logger,
	}

	// init creates the catalog file, so it must not require one.
	if ctx.Command() != "init" {
		cat, source, err := openCatalog(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		globals.Cat = cat
		globals.Source = source
	}

	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("paperpulse"),
		kong.Description("Search, filter and sort a book catalog"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
