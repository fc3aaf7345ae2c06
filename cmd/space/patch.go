package main

import (
	"fmt"

	"github.com/signadot/space"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch and files to which to apply it", cli.ErrUsage)
	}
	p, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	files := docArgs(args[1:])
	if args[0] == "-" && !cfg.String && files[0] == "-" {
		return fmt.Errorf("%w: patch and document cannot both be read from the input", cli.ErrUsage)
	}
	for i, arg := range files {
		target, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if !target.IsTree() {
			target = ir.New()
		}
		var res *ir.Node
		if cfg.Order {
			res = space.PatchOrder(target, p)
		} else {
			res = space.Patch(target, p)
		}
		if err := writeBack(cfg.MainConfig, cc, cfg.Write, i, arg, res); err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
	}
	return nil
}

// getPatch reads the patch named by arg, or with -s parses arg itself.
func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (*ir.Node, error) {
	if cfg.String {
		return parse.Parse([]byte(arg), cfg.parseOpts("")...)
	}
	res, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return res, nil
}
