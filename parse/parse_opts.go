package parse

import (
	"github.com/signadot/space/format"
)

type parseOpts struct {
	format    format.Format
	noHeaders bool

	heredoc                  bool
	heredocStart, heredocEnd string
}

type ParseOption func(*parseOpts)

func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseXML() ParseOption {
	return ParseFormat(format.XMLFormat)
}

// ParseHeaders sets whether the first row of delimited input names the
// columns. It does by default; without headers columns are named "0",
// "1", ...
func ParseHeaders(v bool) ParseOption {
	return func(o *parseOpts) { o.noHeaders = !v }
}

// ParseHeredoc makes space notation input accept heredocs: a line starting
// with the field start opens a multi line value, taken verbatim up to a
// line starting with end, which is dropped.
//
//	body
//	no indentation needed
//	EOF
func ParseHeredoc(start, end string) ParseOption {
	return func(o *parseOpts) {
		o.heredoc = true
		o.heredocStart = start
		o.heredocEnd = end
	}
}
