package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl returns middleware that sets a public Cache-Control header on
// GET responses. Mounted on the catalog routes (classes, products, membership
// plans) so browsers can reuse listings for maxAge seconds. Writes pass through
// untouched.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
			}
			next.ServeHTTP(w, r)
		})
	}
}
