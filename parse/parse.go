package parse

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/signadot/space/debug"
	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
)

// Parse decodes d into a tree. Space notation input never fails to parse:
// malformed content is dropped. Errors are returned only for the other
// formats.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	switch o.format {
	case format.SpaceFormat:
		s := string(d)
		if o.heredoc {
			s = expandHeredoc(s, o.heredocStart, o.heredocEnd)
		}
		return ParseString(s), nil
	case format.JSONFormat:
		return parseJSON(d)
	case format.YAMLFormat:
		return parseYAML(d)
	case format.XMLFormat:
		return parseXML(d)
	case format.CSVFormat, format.TSVFormat, format.SSVFormat:
		return parseDelimited(d, o.format.Delimiter(), !o.noHeaders)
	case format.QueryFormat:
		return parseQuery(string(d))
	default:
		return nil, fmt.Errorf("%w: %v", format.ErrBadFormat, o.format)
	}
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading: %w", err)
	}
	return Parse(d, opts...)
}

// ParseString parses space notation.
func ParseString(s string) *ir.Node {
	res := ir.New()
	s = sanitize(s)
	if debug.Parse() {
		debug.Logf("parse sanitized %q\n", s)
	}
	load(res, s)
	return res
}

var lineFeeds = regexp.MustCompile(`\n\n+`)

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = lineFeeds.ReplaceAllString(s, "\n")
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// load appends the pairs of s to dst. A pair starts on every line which
// does not start with a space and takes the following lines which do.
func load(dst *ir.Node, s string) {
	if s == "" {
		return
	}
	lines := strings.Split(s, "\n")
	start := 0
	for i := 1; i <= len(lines); i++ {
		if i < len(lines) && strings.HasPrefix(lines[i], " ") {
			continue
		}
		loadPair(dst, lines[start:i])
		start = i
	}
}

// loadPair decodes one pair. A first line without a space is a field
// holding a tree made of the following lines, dedented by one. Otherwise
// the first space ends the field and the rest, continued by the dedented
// following lines, is a leaf. Lines with no field are dropped.
func loadPair(dst *ir.Node, block []string) {
	first := block[0]
	i := strings.IndexByte(first, ' ')
	switch {
	case first == "" || i == 0:
		if debug.Parse() {
			debug.Logf("parse dropped %q\n", strings.Join(block, "\n"))
		}
		return
	case i < 0:
		rest := dedent(block[1:])
		if len(rest) > 0 {
			rest[0] = strings.TrimLeft(rest[0], " ")
		}
		child := ir.New()
		load(child, strings.Join(rest, "\n"))
		dst.SetPair(first, child, -1, false)
	default:
		lines := append([]string{first[i+1:]}, dedent(block[1:])...)
		dst.SetPair(first[:i], ir.FromString(strings.Join(lines, "\n")), -1, false)
	}
}

func dedent(lines []string) []string {
	res := make([]string, len(lines))
	for i, ln := range lines {
		res[i] = strings.TrimPrefix(ln, " ")
	}
	return res
}

// expandHeredoc indents the lines between a line starting with start and
// the next line starting with end by one space, dropping the end line.
func expandHeredoc(s, start, end string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	res := make([]string, 0, len(lines))
	open := false
	for _, ln := range lines {
		switch {
		case !open:
			if ln == start {
				ln += " "
				open = true
			} else if strings.HasPrefix(ln, start+" ") {
				open = true
			}
		case strings.HasPrefix(ln, end):
			open = false
			continue
		default:
			ln = " " + ln
		}
		res = append(res, ln)
	}
	return strings.Join(res, "\n")
}
