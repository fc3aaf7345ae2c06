package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/signadot/space/system/docd/storage"

	"github.com/scott-cotton/cli"
)

func fetch(cfg *FetchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fetch.Parse(cc, args)
	if err != nil {
		cfg.Fetch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fetch requires a url", cli.ErrUsage)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	y, err := storage.FetchURL(ctx, http.DefaultClient, args[0])
	if err != nil {
		return fmt.Errorf("error fetching %s: %w", args[0], err)
	}
	return cfg.output(cc.Out, y)
}

func push(cfg *PushConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Push.Parse(cc, args)
	if err != nil {
		cfg.Push.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: push requires a url and at most one file", cli.ErrUsage)
	}
	url, file := args[0], "-"
	if len(args) == 2 {
		file = args[1]
	}
	y, err := getDocFile(cc, file, cfg.parseOpts(file)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	method := http.MethodPut
	if cfg.Patch {
		method = http.MethodPatch
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	res, err := storage.PutURL(ctx, http.DefaultClient, method, url, y)
	if err != nil {
		return fmt.Errorf("error pushing to %s: %w", url, err)
	}
	if res == nil || (res.IsTree() && res.Len() == 0) {
		return nil
	}
	return cfg.output(cc.Out, res)
}

