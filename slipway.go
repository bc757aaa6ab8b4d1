// Package slipway is the static-site generation stage of a
// single-page-application build: given a route list and the bundler's
// compiled asset set, it produces one HTML render job per route, a
// prerender-data sidecar per non-fallback route, and the preload manifest
// the pages reference.
package slipway

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/slipway-studio/slipway/internal/assets"
	"github.com/slipway-studio/slipway/internal/core"
	"github.com/slipway-studio/slipway/internal/page"
	"github.com/slipway-studio/slipway/internal/routes"
	"github.com/slipway-studio/slipway/internal/templates"
)

type (
	RouteDescriptor  = core.RouteDescriptor
	BuildConfig      = core.BuildConfig
	AppManifest      = core.AppManifest
	CompiledAssetSet = core.CompiledAssetSet
	ChunkGroup       = core.ChunkGroup
	LoadManifest     = core.LoadManifest
	PreloadEntry     = core.PreloadEntry
	RenderContext    = page.RenderContext
	Job              = page.Job
)

// FallbackURL is the route reserved for offline navigation when
// service-worker support is enabled.
const FallbackURL = core.FallbackURL

// Prerenderer produces server-side markup for a route. Errors abort the
// build.
type Prerenderer = page.Prerenderer

// Emitter performs the actual HTML write for one render job.
type Emitter = page.Emitter

// ManifestComputer computes a fresh preload manifest when the asset set
// does not already carry one.
type ManifestComputer = assets.Computer

// Collaborators are the external services a build runs against. Computer
// and Emitter default to the built-in implementations; Prerenderer is only
// consulted when BuildConfig.Prerender is set.
type Collaborators struct {
	Prerenderer Prerenderer
	Computer    ManifestComputer
	Emitter     Emitter
	Logger      *zap.Logger
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Computer == nil {
		c.Computer = assets.DefaultComputer{}
	}
	if c.Emitter == nil {
		c.Emitter = page.DefaultEmitter{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Generate runs one build: resolve routes, inject the offline fallback,
// resolve the template, build the preload manifest, render every route,
// and register the prerender sidecars into the asset set. Route rendering
// is parallel; the first fatal error aborts the build.
func Generate(ctx context.Context, cfg BuildConfig, set *CompiledAssetSet, collab Collaborators) error {
	collab = collab.withDefaults()

	routeList := routes.NewResolver(collab.Logger).Resolve(cfg)
	routeList = core.InjectFallback(routeList, cfg.SW)

	templatePath, err := templates.NewEngine(collab.Logger).Resolve(cfg)
	if err != nil {
		return fmt.Errorf("resolve template: %w", err)
	}

	manifest, err := assets.BuildLoadManifest(set, cfg.ESM, collab.Computer)
	if err != nil {
		return fmt.Errorf("build load manifest: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, route := range routeList {
		group.Go(func() error {
			job, err := page.BuildJob(groupCtx, cfg, route, templatePath, manifest, set, collab.Prerenderer)
			if err != nil {
				return err
			}
			return collab.Emitter.Emit(groupCtx, job)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, route := range routeList {
		if err := page.EmitSidecar(set, route); err != nil {
			return err
		}
	}
	return nil
}
