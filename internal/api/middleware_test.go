package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenAuthMiddleware(t *testing.T) {
	handler := TokenAuthMiddleware([]string{"alpha", "beta"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic alpha", http.StatusUnauthorized},
		{"bad token", "Bearer gamma", http.StatusUnauthorized},
		{"token prefix only", "Bearer alph", http.StatusUnauthorized},
		{"first token", "Bearer alpha", http.StatusOK},
		{"second token", "Bearer beta", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/taskmanagers", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}
