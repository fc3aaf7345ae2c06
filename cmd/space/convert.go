package main

import (
	"fmt"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/system/docd/storage"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: convert requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, to := args[0], args[1]
	y, err := getDocFile(cc, from, cfg.parseOpts(from)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", from, err)
	}
	if to == "-" {
		return cfg.output(cc.Out, y)
	}
	opts := cfg.fileOpts()
	if cfg.OutFormat != nil {
		opts = append(opts, encode.EncodeFormat(*cfg.OutFormat))
	}
	if err := storage.WriteFile(to, y, opts...); err != nil {
		return fmt.Errorf("error writing %s: %w", to, err)
	}
	return nil
}
