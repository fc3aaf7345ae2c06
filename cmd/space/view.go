package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/space/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viewReader(cfg, cc.Out, cc.In, "-")
	}
	return viewFiles(cfg, cc, args)
}

func viewFiles(cfg *ViewConfig, cc *cli.Context, files []string) error {
	for i, file := range files {
		if err := viewFile(cfg, cc, file); err != nil {
			return err
		}
		if i < len(files)-1 {
			cc.Out.Write([]byte("---\n"))
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	var r io.Reader = cc.In
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	if err := viewReader(cfg, cc.Out, r, file); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

// viewReader renders each document of r; documents are separated by a
// line holding only ---.
func viewReader(cfg *ViewConfig, w io.Writer, r io.Reader, name string) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	docs := bytes.Split(in, []byte("\n---\n"))
	n := len(docs)
	for i, doc := range docs {
		y, err := parse.Parse(doc, cfg.parseOpts(name)...)
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if err := cfg.output(w, y); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if err := writeSep(w, i < n-1); err != nil {
			return fmt.Errorf("error writing document %d: %w", i, err)
		}
	}
	return nil
}
