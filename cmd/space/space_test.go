package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
	"github.com/signadot/space/system/docd/server"
)

func TestDiffInputs(t *testing.T) {
	tests := []struct {
		name string
		cfg  DiffConfig
		a, b string
		sep  bool
		want string
	}{
		{name: "same", a: "a 1\n", b: "a 1\n", want: ""},
		{name: "diff", a: "a 1\nb 2\n", b: "a 2\nb 2\n", want: "a 2\n"},
		{name: "sep", a: "a 1\n", b: "a 2\n", sep: true, want: "---\na 2\n"},
		{name: "order", cfg: DiffConfig{Order: true}, a: "a 1\nb 2\n", b: "b 2\na 1\n", want: "b\na\n"},
		{name: "order-same", cfg: DiffConfig{Order: true}, a: "a 1\nb 2\n", b: "a 3\nb 4\n", want: ""},
		{name: "text", cfg: DiffConfig{Text: true}, a: "a 1\nb 2\n", b: "a 1\nb 3\n", want: " a 1\n-b 2\n+b 3\n"},
		{name: "cud-same", cfg: DiffConfig{Cud: true}, a: "a 1\n", b: "a 1\n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.MainConfig = &MainConfig{}
			buf := &bytes.Buffer{}
			differs, err := diffInputs(&cfg, buf, parse.ParseString(tt.a), parse.ParseString(tt.b), tt.sep)
			if err != nil {
				t.Fatal(err)
			}
			if differs != (tt.want != "") {
				t.Errorf("differs %v", differs)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestViewReader(t *testing.T) {
	cfg := &ViewConfig{MainConfig: &MainConfig{}}
	buf := &bytes.Buffer{}
	if err := viewReader(cfg, buf, strings.NewReader("a 1\n---\nb\n c 2\n"), "-"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "a 1\n---\nb\n c 2\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}

	j := format.JSONFormat
	cfg.InFormat = &j
	buf.Reset()
	if err := viewReader(cfg, buf, strings.NewReader(`{"a":{"b":"1"}}`), "-"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "a\n b 1\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestOutputLeaf(t *testing.T) {
	cfg := &MainConfig{}
	buf := &bytes.Buffer{}
	if err := cfg.output(buf, ir.FromString("x")); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "x\n" {
		t.Errorf("got %q", got)
	}

	j := format.JSONFormat
	cfg.OutFormat = &j
	buf.Reset()
	if err := cfg.output(buf, ir.FromKeyVals("a", "1")); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != `{"a":"1"}`+"\n" {
		t.Errorf("got %q", got)
	}
}

func TestSelector(t *testing.T) {
	doc := parse.ParseString("0\n name A\n age 3\n1\n name B\n age 4\nx 1\n")
	tests := []struct {
		name string
		cfg  FilterConfig
		arg  string
		want string
	}{
		{name: "expr", arg: `field == "x"`, want: "x 1\n"},
		{name: "expr-get", arg: `tree && num(get("age")) > 3`, want: "1\n name B\n age 4\n"},
		{name: "match", cfg: FilterConfig{Match: true}, arg: "name A\n", want: "0\n name A\n age 3\n"},
		{name: "trim", cfg: FilterConfig{Match: true, Trim: true}, arg: "age \nname A\n", want: "0\n age 3\n name A\n"},
		{name: "trim-leaf-text", cfg: FilterConfig{Match: true, Trim: true}, arg: "age 4\n", want: "1\n age 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.MainConfig = &MainConfig{}
			sel, err := selector(&cfg, nil, tt.arg)
			if err != nil {
				t.Fatal(err)
			}
			res, err := sel(doc)
			if err != nil {
				t.Fatal(err)
			}
			buf := &bytes.Buffer{}
			if err := cfg.output(buf, res); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
	cfg := &FilterConfig{MainConfig: &MainConfig{}}
	if _, err := selector(cfg, nil, "field =="); err == nil {
		t.Error("expected compile error")
	}
}

func TestParseOptsFromPath(t *testing.T) {
	cfg := &MainConfig{}
	y, err := parse.Parse([]byte("a: 1\n"), cfg.parseOpts("x.yaml")...)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := y.GetString("a"); got != "1" {
		t.Errorf("got %q", got)
	}
	s := format.SpaceFormat
	cfg.InFormat = &s
	y, err = parse.Parse([]byte("a: 1\n"), cfg.parseOpts("x.yaml")...)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := y.GetString("a:"); got != "1" {
		t.Errorf("got %q", got)
	}
}

func TestServeApply(t *testing.T) {
	c := server.DefaultConfig()
	c.Dir = "docs"
	cfg := &ServeConfig{Addr: ":9000", Redis: "localhost:6379", TTL: time.Hour}
	cfg.apply(c)
	if c.Addr != ":9000" || c.Redis.Addr != "localhost:6379" || c.Redis.TTL != time.Hour {
		t.Errorf("got %+v", c)
	}
	if c.Dir != "docs" {
		t.Errorf("dir overridden: %q", c.Dir)
	}
	if _, err := c.OpenStore(); err == nil {
		t.Error("expected dir and redis to conflict")
	}
}
