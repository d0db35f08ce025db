// Package web holds the HTML views rendered by the gin handlers.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strings"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses every view. Views are addressed by file name, for example
// "bus-details.tmpl".
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"pathSegment": PathSegment}).
		ParseFS(files, "templates/*.tmpl")
}

// PathSegment escapes a record key for use as one URL path segment. Slashes
// and plus signs are percent-encoded so the router, which matches on the raw
// path and query-unescapes parameters, hands back the original key.
func PathSegment(key string) string {
	return strings.ReplaceAll(url.QueryEscape(key), "+", "%20")
}
