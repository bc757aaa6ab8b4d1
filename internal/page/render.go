// Package page turns one route into a fully specified HTML render job and
// emits the prerender sidecar that travels next to it.
package page

import (
	"context"
	"html/template"
	"os"
	"path/filepath"
	"regexp"

	"github.com/slipway-studio/slipway/internal/core"
)

// Prerenderer is the external service producing server-side markup for a
// route. Its errors are fatal to the build.
type Prerenderer interface {
	Render(ctx context.Context, cfg core.BuildConfig, route core.RouteDescriptor) (string, error)
}

// Emitter is the downstream HTML-emission mechanism. It receives one Job
// per route and performs the actual write.
type Emitter interface {
	Emit(ctx context.Context, job Job) error
}

// scriptModuleRe matches the emitted file an entry point is referenced by.
var scriptModuleRe = regexp.MustCompile(`\.m?js$`)

// excludeAssetsRe keeps the main and polyfill bundles out of automatic
// script injection; the template injects them itself to control load order
// and attributes.
var excludeAssetsRe = regexp.MustCompile(`(bundle|polyfills)(\..*)?\.m?js$`)

// RenderContext is the template-parameter object handed to the emitter's
// templating mechanism.
type RenderContext struct {
	Title        string
	URL          string
	Manifest     core.AppManifest
	InlineCSS    bool
	Preload      bool
	Config       core.BuildConfig
	Route        core.RouteDescriptor
	Page         map[string]any
	SSR          template.HTML
	LoadManifest core.LoadManifest
	Entrypoints  map[string]string
}

// Job is the per-route configuration for the HTML-emission mechanism.
type Job struct {
	Title              string
	Filename           string
	Template           string
	TemplateParameters RenderContext
	Inject             bool
	ScriptLoading      string
	Favicon            string
	ExcludeAssets      *regexp.Regexp
}

// BuildJob assembles the render job for one route. When prerendering is
// enabled the Prerenderer runs here and its error propagates untouched.
func BuildJob(ctx context.Context, cfg core.BuildConfig, route core.RouteDescriptor,
	templatePath string, manifest core.LoadManifest, set *core.CompiledAssetSet,
	prerenderer Prerenderer) (Job, error) {

	title := core.ResolveTitle(route, cfg)

	markup := ""
	if cfg.Prerender && !core.IsFallback(route) && prerenderer != nil {
		rendered, err := prerenderer.Render(ctx, cfg, route)
		if err != nil {
			return Job{}, err
		}
		markup = rendered
	}

	return Job{
		Title:              title,
		Filename:           filepath.Join(cfg.Dest, filepath.FromSlash(core.OutputPath(route.URL))),
		Template:           templatePath,
		TemplateParameters: buildContext(cfg, route, title, markup, manifest, set),
		Inject:             false,
		ScriptLoading:      "defer",
		Favicon:            faviconPath(cfg),
		ExcludeAssets:      excludeAssetsRe,
	}, nil
}

func buildContext(cfg core.BuildConfig, route core.RouteDescriptor, title, markup string,
	manifest core.LoadManifest, set *core.CompiledAssetSet) RenderContext {

	return RenderContext{
		Title:        title,
		URL:          route.URL,
		Manifest:     cfg.Manifest,
		InlineCSS:    cfg.InlineCSS,
		Preload:      cfg.Preload,
		Config:       cfg,
		Route:        route,
		Page:         flattenRoute(route),
		SSR:          template.HTML(markup),
		LoadManifest: manifest,
		Entrypoints:  Entrypoints(set),
	}
}

// flattenRoute merges url and the route's extra data into one convenience
// map for templates.
func flattenRoute(route core.RouteDescriptor) map[string]any {
	flat := make(map[string]any, len(route.Extra)+1)
	for key, value := range route.Extra {
		flat[key] = value
	}
	flat["url"] = route.URL
	return flat
}

// Entrypoints maps every named bundling entry to the public URL of its
// first script-module file. Entries without one are omitted.
func Entrypoints(set *core.CompiledAssetSet) map[string]string {
	entries := make(map[string]string, len(set.Entrypoints))
	for name, files := range set.Entrypoints {
		for _, file := range files {
			if scriptModuleRe.MatchString(file) {
				entries[name] = "/" + file
				break
			}
		}
	}
	return entries
}

func faviconPath(cfg core.BuildConfig) string {
	path := filepath.Join(cfg.Src, "assets", "favicon.ico")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
