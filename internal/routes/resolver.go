// Package routes loads and normalizes the user's route list. Whatever the
// source file yields, resolution ends in a usable list: malformed input is
// logged and replaced by the single-route default, never surfaced as an
// error to the build.
package routes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/slipway-studio/slipway/internal/core"
)

// DefaultSource is the conventional route-list file name. Its absence is
// expected and reported only under verbose mode.
const DefaultSource = "prerender-urls.json"

type Resolver struct {
	log *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// result is the outcome of normalizing a loaded route-list value: either a
// usable list or a fall-back to the default, with the reason when one is
// worth logging.
type result struct {
	routes   []core.RouteDescriptor
	fallback bool
	reason   error
}

func ok(routes []core.RouteDescriptor) result {
	return result{routes: routes}
}

func fallback(reason error) result {
	return result{fallback: true, reason: reason}
}

func defaultRoutes() []core.RouteDescriptor {
	return []core.RouteDescriptor{{URL: "/"}}
}

// Resolve loads the route list named by cfg.RouteSource. It always returns
// a non-empty list; every failure mode degrades to the single-route
// default.
func (r *Resolver) Resolve(cfg core.BuildConfig) []core.RouteDescriptor {
	source := cfg.RouteSource
	custom := source != "" && source != DefaultSource
	if source == "" {
		source = DefaultSource
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Cwd, path)
	}

	if _, err := os.Stat(path); err != nil {
		if custom || cfg.Verbose {
			r.log.Warn("route list file does not exist, using default routes",
				zap.String("path", path))
		}
		return defaultRoutes()
	}

	res := r.load(path)
	if !res.fallback {
		return res.routes
	}
	if res.reason != nil {
		r.warn("failed to load route list, using default routes", path, cfg.Verbose, res.reason)
	}
	return defaultRoutes()
}

func (r *Resolver) warn(msg, path string, verbose bool, err error) {
	fields := []zap.Field{zap.String("path", path), zap.Error(err)}
	if verbose {
		fields = append(fields, zap.Stack("stack"))
	}
	r.log.Warn(msg, fields...)
}

func (r *Resolver) load(path string) result {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return r.loadYAML(path)
	case ".go":
		return r.loadGoModule(path)
	default:
		return r.loadJSON(path)
	}
}

func (r *Resolver) loadJSON(path string) result {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback(err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fallback(fmt.Errorf("parse %s: %w", filepath.Base(path), err))
	}
	return normalize(value)
}

func (r *Resolver) loadYAML(path string) result {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback(err)
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return fallback(fmt.Errorf("parse %s: %w", filepath.Base(path), err))
	}
	return normalize(value)
}

// normalize turns a loaded route-list value into a discriminated result.
// A string is treated as a JSON-encoded array and parsed once more; any
// slice is accepted as the route list; everything else silently falls back
// to the default (downstream consumers rely on that leniency, so a
// non-array value carries no reason and logs nothing).
func normalize(value any) result {
	switch v := value.(type) {
	case string:
		var inner any
		if err := json.Unmarshal([]byte(v), &inner); err != nil {
			return fallback(fmt.Errorf("parse embedded route list: %w", err))
		}
		if _, isString := inner.(string); isString {
			// Resolve the wrapper exactly once.
			return fallback(nil)
		}
		return normalize(inner)
	case []any:
		return ok(descriptors(v))
	}

	// Slices of concrete element types (e.g. from a route module) are
	// accepted too, via a JSON round trip.
	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Kind() == reflect.Slice {
		data, err := json.Marshal(value)
		if err != nil {
			return fallback(fmt.Errorf("normalize route list: %w", err))
		}
		var entries []any
		if err := json.Unmarshal(data, &entries); err != nil {
			return fallback(fmt.Errorf("normalize route list: %w", err))
		}
		return ok(descriptors(entries))
	}

	return fallback(nil)
}

func descriptors(entries []any) []core.RouteDescriptor {
	routes := make([]core.RouteDescriptor, 0, len(entries))
	for _, entry := range entries {
		if m, isMap := entry.(map[string]any); isMap {
			routes = append(routes, core.DescriptorFromMap(m))
		}
	}
	return routes
}
