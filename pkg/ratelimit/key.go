package ratelimit

import (
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/clientip"
)

// ByClientIP keys requests by the client address resolved by
// clientip.Middleware, falling back to clientip.GetIP.
func ByClientIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return ip
		}
		return clientip.GetIP(r)
	}
}

// ByRoute keys requests by method and path.
func ByRoute() KeyFunc {
	return func(r *http.Request) string {
		return r.Method + " " + r.URL.Path
	}
}
