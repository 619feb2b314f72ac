package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// CORSConfig holds the cross-origin policy for the API.
type CORSConfig struct {
	// AllowedOrigins is the origin allowlist. "*" is deliberately not
	// special-cased: credentialed requests and a wildcard don't mix.
	AllowedOrigins []string
}

const (
	corsAllowMethods = "GET, POST, PUT, DELETE"
	corsAllowHeaders = "Authorization, Content-Type"
)

// CORSMiddleware answers preflight requests and stamps the CORS headers on
// responses for allowed origins. Requests from origins outside the allowlist
// pass through without CORS headers; the browser enforces the rest.
func CORSMiddleware(cfg CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && slices.Contains(cfg.AllowedOrigins, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")

				if r.Method == http.MethodOptions {
					h.Set("Access-Control-Allow-Methods", corsAllowMethods)
					h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
