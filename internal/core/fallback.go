package core

// FallbackURL is the fixed route cached by the service worker as the
// generic offline navigation fallback. It renders like any other route but
// is never prerendered and never receives a sidecar.
const FallbackURL = "/200.html"

// InjectFallback appends the fallback route when service-worker support is
// requested and no user route already targets it. Idempotent.
func InjectFallback(routes []RouteDescriptor, sw bool) []RouteDescriptor {
	if !sw {
		return routes
	}
	for _, route := range routes {
		if route.URL == FallbackURL {
			return routes
		}
	}
	return append(routes, RouteDescriptor{URL: FallbackURL})
}

// IsFallback reports whether a route is the injected offline fallback.
func IsFallback(route RouteDescriptor) bool {
	return route.URL == FallbackURL
}
