package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// TokenAuthMiddleware guards the monitoring endpoints with static bearer
// tokens. Token comparison is constant time.
func TokenAuthMiddleware(tokens []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			http.Error(w, "Unauthorized: missing Bearer token", http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		for _, t := range tokens {
			if subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
	})
}
