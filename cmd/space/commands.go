package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: space/s, json/j, yaml/y, xml/x, csv, tsv, ssv, query/q",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: space/s, json/j, yaml/y, xml/x, csv, tsv, ssv, query/q",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "space").
		WithSynopsis("space [opts] command [opts]").
		WithDescription("space is a tool for working with space notation documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return spaceMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			ConvertCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			DelCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			FilterCommand(cfg),
			ExtractCommand(cfg),
			FetchCommand(cfg),
			PushCommand(cfg),
			ServeCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view documents, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "conv").
		WithSynopsis("convert <from> <to>").
		WithDescription("convert a document between formats as given by the file extensions,\n" +
			"or -I and -O. A <to> of - writes to the output.").
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the values at a space separated path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-t] [-w] <path> <value> [files]").
		WithDescription("set the value at a space separated path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func DelCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DelConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Del, "del").
		WithAliases("rm").
		WithSynopsis("del [-w] <path> [files]").
		WithDescription("delete every pair at a space separated path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, LoopEvery: time.Second, LoopLim: -1}
	loopEveryOpt := &cli.Opt{
		Name:        "loopEvery",
		Description: "loop interval",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkLoopEvery()), "(duration)"),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, loopEveryOpt)

	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-order|-text|-cud] a b or diff -loop <cmd>").
		WithDescription("diff documents, exiting 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <patch> [files]").
		WithDescription("patch documents with a diff or, with -order, an order document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Filter, "filter").
		WithAliases("f").
		WithSynopsis("filter [-match [-trim] [-f]] <expr|pattern> [files]").
		WithDescription(filterDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return filter(cfg, cc, args)
		})
}

const filterDescription = `filter keeps the items of a document which pass a test.

By default the test is an expression over each item, with the variables
  field  the item field
  value  the leaf text, or the space notation of a tree
  tree   whether the value is a tree
  len    the number of pairs of a tree value
  index  the position of the item
  path   the space path of the value
and the functions get(path), has(path), num(s) and getenv(name), for
example 'tree && num(get("age")) >= 21'.

With -match the argument is a pattern in space notation, or with -f a file
holding one. An empty leaf in the pattern matches any value. With -trim
the matching items keep only the parts the pattern names.`

func ExtractCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExtractConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Extract, "extract").
		WithAliases("x").
		WithSynopsis("extract '<field> [field...]' [files]").
		WithDescription("collect every pair, at any depth, with one of the given fields").
		WithRun(func(cc *cli.Context, args []string) error {
			return extract(cfg, cc, args)
		})
}

func FetchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FetchConfig{MainConfig: mainCfg, Timeout: 30 * time.Second}
	return cli.NewCommandAt(&cfg.Fetch, "fetch").
		WithSynopsis("fetch [-timeout d] <url>").
		WithDescription("fetch a document over HTTP, in the format of its content type").
		WithOpts(&cli.Opt{
			Name:        "timeout",
			Description: "request timeout",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(timeoutFunc(&cfg.Timeout)), "(duration)"),
		}).
		WithRun(func(cc *cli.Context, args []string) error {
			return fetch(cfg, cc, args)
		})
}

func PushCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PushConfig{MainConfig: mainCfg, Timeout: 30 * time.Second}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "timeout",
		Description: "request timeout",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(timeoutFunc(&cfg.Timeout)), "(duration)"),
	})
	return cli.NewCommandAt(&cfg.Push, "push").
		WithSynopsis("push [-patch] <url> [file]").
		WithDescription("PUT a document, or with -patch PATCH a request body, to a url").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return push(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "ttl",
		Description: "expire redis documents after this long",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(timeoutFunc(&cfg.TTL)), "(duration)"),
	})
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithAliases("docd").
		WithSynopsis("serve [-config file] [-addr addr] [-dir dir | -redis addr]").
		WithDescription("serve a document store over HTTP").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
