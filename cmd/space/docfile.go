package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
	"github.com/signadot/space/system/docd/storage"

	"github.com/scott-cotton/cli"
)

// getDocFile reads and parses path, or the command input when path is -.
func getDocFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// docArgs defaults an empty file list to the command input.
func docArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func writeSep(w io.Writer, sep bool) error {
	if !sep {
		return nil
	}
	_, err := w.Write([]byte("---\n"))
	return err
}

// output writes y to w, ending space notation leaves with a newline.
func (cfg *MainConfig) output(w io.Writer, y *ir.Node) error {
	opts := cfg.encOpts(w)
	if err := encode.Encode(y, w, opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if y.IsLeaf() && y.String != "" && encode.FormatFromOpts(opts...) == format.SpaceFormat {
		_, err := w.Write([]byte("\n"))
		return err
	}
	return nil
}

// save writes y back to path in the format of its extension, or to w when
// path is the command input.
func (cfg *MainConfig) save(w io.Writer, path string, y *ir.Node) error {
	if path == "-" {
		return cfg.output(w, y)
	}
	if err := storage.WriteFile(path, y, cfg.fileOpts()...); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

func (cfg *MainConfig) fileOpts() []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodePretty(cfg.Pretty),
		encode.EncodeGuessTypes(cfg.Guess),
		encode.EncodeXMLAttributes(cfg.Attrs),
	}
}
