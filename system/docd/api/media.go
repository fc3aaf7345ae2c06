package api

import (
	"strings"

	"github.com/signadot/space/format"
)

var mediaTypes = map[string]format.Format{
	ContentType:                         format.SpaceFormat,
	"application/json":                  format.JSONFormat,
	"application/yaml":                  format.YAMLFormat,
	"application/xml":                   format.XMLFormat,
	"text/xml":                          format.XMLFormat,
	"text/csv":                          format.CSVFormat,
	"text/tab-separated-values":         format.TSVFormat,
	"application/x-www-form-urlencoded": format.QueryFormat,
}

// MediaType returns the Content-Type of documents in format f.
func MediaType(f format.Format) string {
	switch f {
	case format.SpaceFormat:
		return ContentType
	case format.JSONFormat:
		return "application/json"
	case format.YAMLFormat:
		return "application/yaml"
	case format.XMLFormat:
		return "application/xml"
	case format.CSVFormat:
		return "text/csv"
	case format.TSVFormat:
		return "text/tab-separated-values"
	case format.QueryFormat:
		return "application/x-www-form-urlencoded"
	default:
		return "text/plain"
	}
}

// FormatOf picks the format named by a Content-Type or Accept value,
// falling back to the extension of path.
func FormatOf(contentType, path string) format.Format {
	for _, part := range strings.Split(contentType, ",") {
		mt, _, _ := strings.Cut(part, ";")
		if f, ok := mediaTypes[strings.TrimSpace(mt)]; ok {
			return f
		}
	}
	return format.FromPath(path)
}
