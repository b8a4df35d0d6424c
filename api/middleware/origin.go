// ABOUTME: Origin checks for browser callers of the local panel API
// ABOUTME: Same-origin and listed origins pass; other browser origins are refused

package middleware

import (
	"net/http"
	"net/url"

	"tabscribe-api/core/interfaces"
)

// OriginAllowed reports whether a browser request from origin may use the API.
// The API's own origin (the /docs UI) is always allowed; "*" in allowed opens it to every origin.
func OriginAllowed(r *http.Request, allowed []string, origin string) bool {
	if u, err := url.Parse(origin); err == nil && u.Host != "" && u.Host == r.Host {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// OriginGuard rejects requests carrying an Origin header that is not allowed,
// including simple cross-origin POSTs that never see a preflight.
// Requests without an Origin header (curl, other local tools) pass.
func OriginGuard(allowed []string, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || OriginAllowed(r, allowed, origin) {
				next.ServeHTTP(w, r)
				return
			}

			if logger != nil {
				logger.Warn("Request from disallowed origin rejected", map[string]interface{}{
					"origin": origin,
					"method": r.Method,
					"path":   r.URL.Path,
				})
			}
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"status":403,"title":"Forbidden","detail":"Origin not allowed"}`))
		})
	}
}
