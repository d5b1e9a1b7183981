package httpkit

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions configures the browser-facing surface of the API. It is
// deliberately small: the service only answers GET and POST with JSON
// bodies and never uses cookies, so credentials and exposed headers
// have no place here.
type CORSOptions struct {
	AllowedOrigins []string
	MaxAgeSeconds  int
}

func CORS(opt CORSOptions) func(http.Handler) http.Handler {
	if opt.MaxAgeSeconds == 0 {
		opt.MaxAgeSeconds = 600
	}

	maxAge := strconv.Itoa(opt.MaxAgeSeconds)
	allowedOrigins := normalizeList(opt.AllowedOrigins)

	isAllowedOrigin := func(origin string) bool {
		if origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && isAllowedOrigin(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")

				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", maxAge)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
