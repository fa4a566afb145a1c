package middleware

import (
	"net/http"
	"strings"
)

type originSet struct {
	any     bool
	origins map[string]struct{}
}

// newOriginSet treats "*" or an empty list as any origin.
func newOriginSet(allowed []string) originSet {
	set := originSet{any: len(allowed) == 0, origins: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			set.any = true
		}
		set.origins[origin] = struct{}{}
	}
	return set
}

func (s originSet) allows(origin string) bool {
	if s.any {
		return true
	}
	_, ok := s.origins[origin]
	return ok
}

// CORS allows browser pages from the configured origins.
func CORS(allowed []string) func(http.Handler) http.Handler {
	set := newOriginSet(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && set.allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OriginChecker returns a websocket origin check matching the CORS policy.
// Requests without an Origin header are non-browser clients and pass.
func OriginChecker(allowed []string) func(*http.Request) bool {
	set := newOriginSet(allowed)
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set.allows(origin)
	}
}
