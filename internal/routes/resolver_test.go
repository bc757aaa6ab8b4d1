package routes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/slipway-studio/slipway/internal/core"
)

func writeRouteFile(t *testing.T, name, content string) core.BuildConfig {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return core.BuildConfig{Cwd: dir, RouteSource: name}
}

func observedResolver() (*Resolver, *observer.ObservedLogs) {
	obsCore, logs := observer.New(zap.WarnLevel)
	return NewResolver(zap.New(obsCore)), logs
}

func TestResolveJSONArray(t *testing.T) {
	cfg := writeRouteFile(t, "prerender-urls.json",
		`[{"url":"/"},{"url":"/blog/","title":"Blog","foo":"bar"}]`)

	routes := NewResolver(nil).Resolve(cfg)

	want := []core.RouteDescriptor{
		{URL: "/"},
		{URL: "/blog/", Title: "Blog", Extra: map[string]any{"foo": "bar"}},
	}
	if diff := cmp.Diff(want, routes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveJSONEncodedString(t *testing.T) {
	// A JSON string whose content is itself a JSON array is parsed twice.
	cfg := writeRouteFile(t, "prerender-urls.json", `"[{\"url\":\"/a/\"}]"`)

	routes := NewResolver(nil).Resolve(cfg)

	require.Len(t, routes, 1)
	assert.Equal(t, "/a/", routes[0].URL)
}

func TestResolveInvalidJSONWarnsAndDefaults(t *testing.T) {
	cfg := writeRouteFile(t, "prerender-urls.json", `{"url": "/"`)

	r, logs := observedResolver()
	routes := r.Resolve(cfg)

	assert.Equal(t, []core.RouteDescriptor{{URL: "/"}}, routes)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "failed to load route list")
}

func TestResolveNonArrayIsSilentlyDefaulted(t *testing.T) {
	// Valid JSON that is not an array falls back without a warning.
	cfg := writeRouteFile(t, "prerender-urls.json", `{"url":"/"}`)

	r, logs := observedResolver()
	routes := r.Resolve(cfg)

	assert.Equal(t, []core.RouteDescriptor{{URL: "/"}}, routes)
	assert.Equal(t, 0, logs.Len())
}

func TestResolveMissingDefaultFileIsSilent(t *testing.T) {
	r, logs := observedResolver()
	routes := r.Resolve(core.BuildConfig{Cwd: t.TempDir()})

	assert.Equal(t, []core.RouteDescriptor{{URL: "/"}}, routes)
	assert.Equal(t, 0, logs.Len())
}

func TestResolveMissingDefaultFileWarnsWhenVerbose(t *testing.T) {
	r, logs := observedResolver()
	routes := r.Resolve(core.BuildConfig{Cwd: t.TempDir(), Verbose: true})

	assert.Equal(t, []core.RouteDescriptor{{URL: "/"}}, routes)
	assert.Equal(t, 1, logs.Len())
}

func TestResolveMissingCustomFileWarns(t *testing.T) {
	r, logs := observedResolver()
	routes := r.Resolve(core.BuildConfig{Cwd: t.TempDir(), RouteSource: "my-routes.json"})

	assert.Equal(t, []core.RouteDescriptor{{URL: "/"}}, routes)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "does not exist")
}

func TestResolveVerboseWarningCarriesStack(t *testing.T) {
	cfg := writeRouteFile(t, "prerender-urls.json", `not json at all`)
	cfg.Verbose = true

	r, logs := observedResolver()
	r.Resolve(cfg)

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap(), "stack")
}

func TestResolveYAML(t *testing.T) {
	cfg := writeRouteFile(t, "routes.yaml", "- url: /\n- url: /docs/\n  title: Docs\n")

	routes := NewResolver(nil).Resolve(cfg)

	require.Len(t, routes, 2)
	assert.Equal(t, "/docs/", routes[1].URL)
	assert.Equal(t, "Docs", routes[1].Title)
}

func TestResolveGoModuleSlice(t *testing.T) {
	cfg := writeRouteFile(t, "routes.go", `package main

var Routes = []map[string]any{
	{"url": "/"},
	{"url": "/blog/", "title": "Blog"},
}
`)

	routes := NewResolver(nil).Resolve(cfg)

	require.Len(t, routes, 2)
	assert.Equal(t, "Blog", routes[1].Title)
}

func TestResolveGoModuleFunc(t *testing.T) {
	cfg := writeRouteFile(t, "routes.go", `package main

func Routes() ([]map[string]any, error) {
	return []map[string]any{{"url": "/from-func/"}}, nil
}
`)

	routes := NewResolver(nil).Resolve(cfg)

	require.Len(t, routes, 1)
	assert.Equal(t, "/from-func/", routes[0].URL)
}

func TestResolveGoModuleFuncError(t *testing.T) {
	cfg := writeRouteFile(t, "routes.go", `package main

import "errors"

func Routes() ([]map[string]any, error) {
	return nil, errors.New("boom")
}
`)

	r, logs := observedResolver()
	routes := r.Resolve(cfg)

	assert.Equal(t, []core.RouteDescriptor{{URL: "/"}}, routes)
	require.Equal(t, 1, logs.Len())
}

func TestNormalizeTypedSlice(t *testing.T) {
	res := normalize([]map[string]string{{"url": "/typed/"}})

	require.False(t, res.fallback)
	require.Len(t, res.routes, 1)
	assert.Equal(t, "/typed/", res.routes[0].URL)
}
