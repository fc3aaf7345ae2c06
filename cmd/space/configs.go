package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/format"
	"github.com/signadot/space/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color     bool   `cli:"name=color desc='encode with color'"`
	Pretty    bool   `cli:"name=pretty desc='indent json and xml output'"`
	Guess     bool   `cli:"name=guess desc='output numbers, booleans and arrays in json and yaml'"`
	Attrs     bool   `cli:"name=attrs desc='output leaves as xml attributes'"`
	NoHeaders bool   `cli:"name=noheaders desc='delimited input has no header row'"`
	Heredoc   string `cli:"name=heredoc desc='heredoc delimiters for space input, as start:end'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// parseOpts returns the options for parsing the input named path. Without
// -I the format follows the extension of path.
func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	fmat := format.FromPath(path)
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	res := []parse.ParseOption{
		parse.ParseFormat(fmat),
		parse.ParseHeaders(!cfg.NoHeaders),
	}
	if start, end, ok := strings.Cut(cfg.Heredoc, ":"); ok {
		res = append(res, parse.ParseHeredoc(start, end))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.SpaceFormat
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodePretty(cfg.Pretty),
		encode.EncodeGuessTypes(cfg.Guess),
		encode.EncodeXMLAttributes(cfg.Attrs),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return res
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Tree  bool `cli:"name=t desc='parse the value as space notation'"`
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Set *cli.Command
}

type DelConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Del *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Order     bool   `cli:"name=order desc='diff the order of fields only'"`
	Text      bool   `cli:"name=text desc='line diff of the space notation'"`
	Cud       bool   `cli:"name=cud desc='report created, updated and deleted fields'"`
	Loop      string `cli:"name=loop desc='command to produce documents to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

type PatchConfig struct {
	*MainConfig
	Order  bool `cli:"name=order desc='the patch is an order document'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	Write  bool `cli:"name=w desc='write the results back to the files'"`

	Patch *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Match bool `cli:"name=match desc='the argument is a pattern document, not an expression'"`
	Trim  bool `cli:"name=trim desc='trim the results to the pattern'"`
	File  bool `cli:"name=f desc='read the pattern from a file'"`

	Filter *cli.Command
}

type ExtractConfig struct {
	*MainConfig

	Extract *cli.Command
}

type FetchConfig struct {
	*MainConfig
	Timeout time.Duration

	Fetch *cli.Command
}

type PushConfig struct {
	*MainConfig
	Patch   bool `cli:"name=patch desc='send the file as a patch request body'"`
	Timeout time.Duration

	Push *cli.Command
}

func timeoutFunc(dst *time.Duration) func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*dst = d
		return d, nil
	}
}

type ServeConfig struct {
	*MainConfig
	ConfigFile string `cli:"name=config desc='configuration file (space notation)'"`
	Addr       string `cli:"name=addr desc='HTTP listen address'"`
	Dir        string `cli:"name=dir desc='store documents in this directory'"`
	Redis      string `cli:"name=redis desc='store documents in the redis server at this address'"`
	Prefix     string `cli:"name=prefix desc='redis key prefix'"`
	Gops       bool   `cli:"name=gops desc='start the gops diagnostics agent'"`
	TTL        time.Duration

	Serve *cli.Command
}
