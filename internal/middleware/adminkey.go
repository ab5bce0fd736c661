package middleware

import (
	"crypto/subtle"
	"net/http"

	"catalog-api/pkg/apierror"
	"catalog-api/pkg/response"
)

// AdminKey guards admin routes with a static shared key supplied in the
// X-Admin-Key header. If key is empty the guard is disabled (development).
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				response.Error(w, apierror.Unauthorized("invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
