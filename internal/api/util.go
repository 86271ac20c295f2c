package api

import (
	"encoding/json"
	"net/http"
)

// jsonError writes an error body in the same {"error": ...} shape the
// monitoring client expects from every failing endpoint.
func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
