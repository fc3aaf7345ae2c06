package main

import (
	"fmt"

	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	missing, found := 0, 0
	for _, arg := range docArgs(args[1:]) {
		y, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		v := y.Get(path)
		if v == nil {
			missing++
			continue
		}
		if err := writeSep(cc.Out, found > 0); err != nil {
			return err
		}
		found++
		if err := cfg.output(cc.Out, v); err != nil {
			return err
		}
	}
	if missing != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a path and a value", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	for i, arg := range docArgs(args[2:]) {
		y, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if !y.IsTree() {
			y = ir.New()
		}
		y.Put(path, setValue(cfg, args[1]))
		if err := writeBack(cfg.MainConfig, cc, cfg.Write, i, arg, y); err != nil {
			return err
		}
	}
	return nil
}

func setValue(cfg *SetConfig, v string) *ir.Node {
	if cfg.Tree {
		return parse.ParseString(v)
	}
	return ir.FromString(v)
}

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		cfg.Del.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || args[0] == "" {
		return fmt.Errorf("%w: del requires a path", cli.ErrUsage)
	}
	for i, arg := range docArgs(args[1:]) {
		y, err := getDocFile(cc, arg, cfg.parseOpts(arg)...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		y.Remove(args[0])
		if err := writeBack(cfg.MainConfig, cc, cfg.Write, i, arg, y); err != nil {
			return err
		}
	}
	return nil
}

func writeBack(cfg *MainConfig, cc *cli.Context, write bool, i int, arg string, y *ir.Node) error {
	if write {
		return cfg.save(cc.Out, arg, y)
	}
	if err := writeSep(cc.Out, i > 0); err != nil {
		return err
	}
	return cfg.output(cc.Out, y)
}
