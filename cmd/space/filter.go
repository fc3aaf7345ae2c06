package main

import (
	"fmt"

	"github.com/signadot/space"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
	"github.com/signadot/space/query"

	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires an expression or a pattern", cli.ErrUsage)
	}
	if cfg.Trim && !cfg.Match {
		return fmt.Errorf("%w: -trim requires -match", cli.ErrUsage)
	}
	sel, err := selector(cfg, cc, args[0])
	if err != nil {
		return err
	}
	for i, arg := range docArgs(args[1:]) {
		y, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		res, err := sel(y)
		if err != nil {
			return fmt.Errorf("error filtering %s: %w", arg, err)
		}
		if err := writeSep(cc.Out, i > 0); err != nil {
			return err
		}
		if err := cfg.output(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func selector(cfg *FilterConfig, cc *cli.Context, arg string) (func(*ir.Node) (*ir.Node, error), error) {
	if !cfg.Match {
		pred, err := query.Compile(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return pred.Filter, nil
	}
	var (
		pattern *ir.Node
		err     error
	)
	if cfg.File {
		pattern, err = getDocFile(cc, arg, cfg.parseOpts(arg)...)
	} else {
		pattern, err = parse.Parse([]byte(arg), cfg.parseOpts("")...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern: %w", cli.ErrUsage, err)
	}
	return func(y *ir.Node) (*ir.Node, error) {
		res := space.Select(y, pattern)
		if !cfg.Trim {
			return res, nil
		}
		trimmed := ir.New()
		for i, f := range res.Fields {
			v := res.Values[i]
			if v.IsTree() && pattern.IsTree() {
				v = space.Trim(pattern, v)
			}
			trimmed.SetPair(f, v, -1, false)
		}
		return trimmed, nil
	}, nil
}

func extract(cfg *ExtractConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Extract.Parse(cc, args)
	if err != nil {
		cfg.Extract.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || args[0] == "" {
		return fmt.Errorf("%w: extract requires the fields to collect", cli.ErrUsage)
	}
	for i, arg := range docArgs(args[1:]) {
		y, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if err := writeSep(cc.Out, i > 0); err != nil {
			return err
		}
		if err := cfg.output(cc.Out, y.Extract(args[0])); err != nil {
			return err
		}
	}
	return nil
}
