// Package assets builds the preload manifest for a compiled asset set,
// reusing a manifest an earlier build stage already produced whenever one
// is present.
package assets

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/slipway-studio/slipway/internal/core"
)

// PushManifestAsset is the asset name an upstream stage emits a
// precomputed manifest under.
const PushManifestAsset = "push-manifest.json"

// Computer is the collaborator contract for computing a fresh manifest
// when no precomputed one exists. Invoked at most once per build.
type Computer interface {
	Compute(set *core.CompiledAssetSet, esm bool, groups []core.ChunkGroup) (core.LoadManifest, error)
}

// BuildLoadManifest returns the manifest to render with. A pre-existing
// push-manifest asset wins verbatim, keeping this stage consistent with
// whatever produced it; otherwise the computer runs exactly once.
func BuildLoadManifest(set *core.CompiledAssetSet, esm bool, computer Computer) (core.LoadManifest, error) {
	if data, exists := set.Assets[PushManifestAsset]; exists {
		return ParseLoadManifest(data)
	}
	return computer.Compute(set, esm, set.ChunkGroups)
}

// ParseLoadManifest decodes a push-manifest asset body.
func ParseLoadManifest(data []byte) (core.LoadManifest, error) {
	var manifest core.LoadManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", PushManifestAsset, err)
	}
	return manifest, nil
}

// DefaultComputer derives a manifest from the asset set alone: entry-point
// files carry full weight, files reachable only through chunk groups carry
// reduced weight. Kind follows the file extension.
type DefaultComputer struct{}

func (DefaultComputer) Compute(set *core.CompiledAssetSet, esm bool, groups []core.ChunkGroup) (core.LoadManifest, error) {
	manifest := make(core.LoadManifest)

	for _, files := range set.Entrypoints {
		for _, file := range files {
			if kind := preloadKind(file, esm); kind != "" {
				manifest[file] = core.PreloadEntry{Kind: kind, Weight: 1}
			}
		}
	}

	for _, group := range groups {
		for _, file := range group.Files {
			if _, seen := manifest[file]; seen {
				continue
			}
			if kind := preloadKind(file, esm); kind != "" {
				manifest[file] = core.PreloadEntry{Kind: kind, Weight: 0.5}
			}
		}
	}

	return manifest, nil
}

func preloadKind(file string, esm bool) string {
	switch strings.ToLower(path.Ext(file)) {
	case ".mjs":
		if !esm {
			return ""
		}
		return "script"
	case ".js":
		return "script"
	case ".css":
		return "style"
	case ".woff", ".woff2", ".ttf":
		return "font"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return "image"
	default:
		return ""
	}
}
