package core

// RouteDescriptor is one entry of the resolved route list. URL always
// begins with "/"; a URL ending in ".html" maps to that exact file,
// anything else maps to "<url>/index.html". Extra carries arbitrary
// route-scoped data forwarded verbatim to the renderer and the sidecar.
type RouteDescriptor struct {
	URL   string
	Title string
	Extra map[string]any
}

// DescriptorFromMap builds a RouteDescriptor from a decoded route-list
// entry. Known keys are lifted into fields, everything else lands in Extra.
func DescriptorFromMap(m map[string]any) RouteDescriptor {
	route := RouteDescriptor{}
	for key, value := range m {
		switch key {
		case "url":
			if s, ok := value.(string); ok {
				route.URL = s
			}
		case "title":
			if s, ok := value.(string); ok {
				route.Title = s
			}
		default:
			if route.Extra == nil {
				route.Extra = make(map[string]any)
			}
			route.Extra[key] = value
		}
	}
	return route
}

// AppManifest is the product metadata slice of the web app manifest that
// title resolution consults.
type AppManifest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// BuildConfig is the read-only aggregate handed over by the build
// orchestrator. This package never mutates it.
type BuildConfig struct {
	Cwd  string
	Src  string
	Dest string

	// Template is an optional path overriding the project template.
	Template string
	// RouteSource is the route-list file path, relative to Cwd unless
	// absolute. Empty means the conventional default file name.
	RouteSource string

	Prerender bool
	SW        bool
	Preload   bool
	InlineCSS bool
	Verbose   bool
	ESM       bool

	Manifest AppManifest
	PkgName  string
	Title    string
}

// ChunkGroup is the bundler's grouping of emitted files that belong to one
// logical chunk.
type ChunkGroup struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// CompiledAssetSet is the bundler's output for one build: named entry
// points with their ordered emitted files, the chunk-group structure, and
// the emitted asset bodies keyed by public path. Sidecar files produced by
// this stage are registered back into Assets so the bundler's final write
// phase picks them up.
type CompiledAssetSet struct {
	Entrypoints map[string][]string
	ChunkGroups []ChunkGroup
	Assets      map[string][]byte
}

// AddAsset registers an emitted asset into the set. Not safe for
// concurrent use; callers register assets from a single goroutine.
func (s *CompiledAssetSet) AddAsset(name string, data []byte) {
	if s.Assets == nil {
		s.Assets = make(map[string][]byte)
	}
	s.Assets[name] = data
}

// PreloadEntry is the preload metadata recorded for one emitted file.
type PreloadEntry struct {
	Kind   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// LoadManifest maps emitted file paths to their preload metadata.
type LoadManifest map[string]PreloadEntry
