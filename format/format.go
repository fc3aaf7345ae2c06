package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	SpaceFormat Format = iota
	JSONFormat
	YAMLFormat
	XMLFormat
	CSVFormat
	TSVFormat
	SSVFormat
	QueryFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"s":     SpaceFormat,
		"space": SpaceFormat,
		"j":     JSONFormat,
		"json":  JSONFormat,
		"y":     YAMLFormat,
		"yaml":  YAMLFormat,
		"x":     XMLFormat,
		"xml":   XMLFormat,
		"csv":   CSVFormat,
		"tsv":   TSVFormat,
		"ssv":   SSVFormat,
		"q":     QueryFormat,
		"query": QueryFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case SpaceFormat:
		return []byte("space"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case CSVFormat:
		return []byte("csv"), nil
	case TSVFormat:
		return []byte("tsv"), nil
	case SSVFormat:
		return []byte("ssv"), nil
	case QueryFormat:
		return []byte("query"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsSpace() bool { return f == SpaceFormat }
func (f Format) IsJSON() bool  { return f == JSONFormat }
func (f Format) IsYAML() bool  { return f == YAMLFormat }
func (f Format) IsXML() bool   { return f == XMLFormat }

// IsDelimited reports whether f is one of the row/column formats.
func (f Format) IsDelimited() bool {
	return f == CSVFormat || f == TSVFormat || f == SSVFormat
}

// Delimiter returns the cell separator of a delimited format.
func (f Format) Delimiter() rune {
	switch f {
	case TSVFormat:
		return '\t'
	case SSVFormat:
		return ' '
	default:
		return ','
	}
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case SpaceFormat:
		return ".space"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case XMLFormat:
		return ".xml"
	case CSVFormat:
		return ".csv"
	case TSVFormat:
		return ".tsv"
	case SSVFormat:
		return ".ssv"
	default:
		return ""
	}
}

// FromPath guesses a format from the extension of path, defaulting to
// SpaceFormat.
func FromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" {
		return YAMLFormat
	}
	for _, f := range AllFormats() {
		if ext != "" && f.Suffix() == ext {
			return f
		}
	}
	return SpaceFormat
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{SpaceFormat, JSONFormat, YAMLFormat, XMLFormat, CSVFormat, TSVFormat, SSVFormat, QueryFormat}
}
