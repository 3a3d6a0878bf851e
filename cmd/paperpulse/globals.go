package main

import (
	"io"
	"log"
	"paperpulse/cmd/paperpulse/render"
	"paperpulse/internal/catalog"
	"paperpulse/internal/config"
)

type Globals struct {
	Cat *catalog.Catalog
	// Source names where Cat was loaded from: a file path or the embedded sample.
	Source string
	Config config.Config
	Out    io.Writer
	Render render.Renderer
	Log    *log.Logger
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.New(w, "paperpulse: ", 0)
}
