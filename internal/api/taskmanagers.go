// api/taskmanagers.go
package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/taskgrid-io/taskgrid/internal/taskmanager"
)

func RegisterTaskManagerHandlers(mux *http.ServeMux, resolver *taskmanager.Resolver, store taskmanager.MetricStore) {
	// List all registered task managers (no metric blobs)
	mux.HandleFunc("/api/taskmanagers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		serveTaskManagers(w, r, resolver, store, "")
	})

	// One task manager by hex id, enriched with its metrics snapshot
	mux.HandleFunc("/api/taskmanagers/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/taskmanagers/")
		serveTaskManagers(w, r, resolver, store, id)
	})
}

// serveTaskManagers runs the resolve/build pipeline shared by both routes.
// Resolver and builder failures are the only error responses; an unknown or
// malformed id is a well-formed empty listing.
func serveTaskManagers(w http.ResponseWriter, r *http.Request, resolver *taskmanager.Resolver, store taskmanager.MetricStore, id string) {
	records, err := resolver.Resolve(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	doc, err := taskmanager.Build(r.Context(), records, id != "", store)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, doc)
}
