// Package templates resolves the HTML template a build renders every
// route with, patching well-known markers into render-engine
// interpolations before handing a concrete file path downstream.
package templates

import (
	_ "embed"
)

//go:embed default/template.html
var defaultTemplate []byte

//go:embed fragments/head-end.html
var headEndFragment []byte

//go:embed fragments/body-end.html
var bodyEndFragment []byte
