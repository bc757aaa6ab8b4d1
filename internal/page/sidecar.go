package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/slipway-studio/slipway/internal/core"
)

// SidecarName is the JSON file emitted next to each rendered page with the
// route's prerender context for client-side reuse.
const SidecarName = "preact_prerender_data.json"

// EmitSidecar registers the route's prerender-data asset into the compiled
// output collection. The fallback route is skipped: it reuses the
// homepage's prerender data by convention.
func EmitSidecar(set *core.CompiledAssetSet, route core.RouteDescriptor) error {
	if core.IsFallback(route) {
		return nil
	}

	data, err := sidecarJSON(route)
	if err != nil {
		return fmt.Errorf("sidecar for %s: %w", route.URL, err)
	}

	set.AddAsset(core.SidecarDir(route.URL)+SidecarName, data)
	return nil
}

// sidecarJSON serializes {url, ...extra} with stable key order: url first,
// title when present, then the extra keys sorted.
func sidecarJSON(route core.RouteDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeMember := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		encodedValue, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
		return nil
	}

	if err := writeMember("url", route.URL); err != nil {
		return nil, err
	}
	if route.Title != "" {
		if err := writeMember("title", route.Title); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(route.Extra))
	for key := range route.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := writeMember(key, route.Extra[key]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
