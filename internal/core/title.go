package core

import "strings"

// DefaultAppName is the last resort of the title fallback chain.
const DefaultAppName = "Slipway App"

// ResolveTitle picks the page title for a route: the route's own title,
// then the configured title, then the manifest name and short name, then
// the package name with any leading @scope/ stripped, then DefaultAppName.
func ResolveTitle(route RouteDescriptor, cfg BuildConfig) string {
	if route.Title != "" {
		return route.Title
	}
	if cfg.Title != "" {
		return cfg.Title
	}
	if cfg.Manifest.Name != "" {
		return cfg.Manifest.Name
	}
	if cfg.Manifest.ShortName != "" {
		return cfg.Manifest.ShortName
	}
	if name := stripScope(cfg.PkgName); name != "" {
		return name
	}
	return DefaultAppName
}

func stripScope(pkgName string) string {
	if !strings.HasPrefix(pkgName, "@") {
		return pkgName
	}
	if _, rest, ok := strings.Cut(pkgName, "/"); ok {
		return rest
	}
	return pkgName
}
