package core

import (
	"path"
	"strings"
)

// NormalizeURL guarantees a leading slash and collapses a trailing slash
// (except for the root route).
func NormalizeURL(url string) string {
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	if url != "/" && strings.HasSuffix(url, "/") {
		url = strings.TrimSuffix(url, "/")
	}
	return url
}

// OutputPath derives the HTML file path for a route relative to the
// destination root: "<url>" itself for file routes ending in ".html",
// "<url>/index.html" for directory routes.
func OutputPath(url string) string {
	trimmed := strings.TrimPrefix(url, "/")
	if strings.HasSuffix(url, ".html") {
		return trimmed
	}
	return path.Join(trimmed, "index.html")
}

// SidecarDir normalizes a route URL into the directory prefix the sidecar
// file is emitted under: trailing slash ensured, one leading slash
// stripped.
func SidecarDir(url string) string {
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return strings.TrimPrefix(url, "/")
}
