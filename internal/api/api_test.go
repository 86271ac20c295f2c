package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/metrics"
	"github.com/taskgrid-io/taskgrid/internal/taskmanager"
	"github.com/taskgrid-io/taskgrid/internal/testcluster"
	"github.com/taskgrid-io/taskgrid/internal/testutil"
)

func setupTestServer(t *testing.T) (*httptest.Server, cluster.Cluster, func()) {
	t.Helper()
	cl, cleanup := testcluster.SetupEtcdCluster(t)

	// Nanosecond interval so every Update really refreshes in tests.
	cache := metrics.NewCache(cl, time.Nanosecond, testutil.NewTestLogger(false))
	resolver := taskmanager.NewResolver(cl, 5*time.Second)

	protected := http.NewServeMux()
	RegisterTaskManagerHandlers(protected, resolver, cache)
	RegisterStatusHandler(protected, cl)

	mux := http.NewServeMux()
	mux.Handle("/api/", TokenAuthMiddleware([]string{"testtoken"}, protected))

	server := httptest.NewServer(mux)
	return server, cl, func() {
		server.Close()
		cleanup()
	}
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer testtoken")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	for _, path := range []string{"/api/taskmanagers", "/api/taskmanagers/0a", "/api/status"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestListTaskManagers(t *testing.T) {
	server, cl, cleanup := setupTestServer(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		testcluster.RegisterTestTaskManager(t, cl, "host", 4)
	}

	resp := get(t, server.URL+"/api/taskmanagers")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Decode loosely so the absence of the metrics key is observable.
	var out struct {
		TaskManagers []map[string]any `json:"taskmanagers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.TaskManagers, 3)
	for _, tm := range out.TaskManagers {
		require.NotContains(t, tm, "metrics")
	}
}

func TestGetTaskManagerWithMetrics(t *testing.T) {
	server, cl, cleanup := setupTestServer(t)
	defer cleanup()

	id := testcluster.RegisterTestTaskManager(t, cl, "host", 4)
	require.NoError(t, cl.PublishMetrics(context.Background(), id, map[string]string{
		metrics.KeyHeapUsed:         "100",
		metrics.KeyHeapCommitted:    "200",
		metrics.KeyHeapMax:          "300",
		metrics.KeyNonHeapUsed:      "10",
		metrics.KeyNonHeapCommitted: "20",
		metrics.KeyNonHeapMax:       "30",
		metrics.GCCountKey("gc"):    "5",
		metrics.GCTimeKey("gc"):     "120",
	}))

	resp := get(t, server.URL+"/api/taskmanagers/"+id.String())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc taskmanager.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Len(t, doc.TaskManagers, 1)
	require.Equal(t, id.String(), doc.TaskManagers[0].ID)

	m := doc.TaskManagers[0].Metrics
	require.NotNil(t, m)
	require.Equal(t, int64(110), m.TotalUsed)
	require.Equal(t, int64(220), m.TotalCommitted)
	require.Equal(t, int64(330), m.TotalMax)
	require.Len(t, m.GarbageCollectors, 1)
	require.Equal(t, "5", m.GarbageCollectors[0].Count)
}

func TestGetTaskManagerInvalidID(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	resp := get(t, server.URL+"/api/taskmanagers/not-a-hex-id")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc taskmanager.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Empty(t, doc.TaskManagers)
}

func TestGetTaskManagerUnknownID(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	resp := get(t, server.URL+"/api/taskmanagers/"+cluster.NewID().String())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc taskmanager.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Empty(t, doc.TaskManagers)
}

func TestClientRoundTrip(t *testing.T) {
	server, cl, cleanup := setupTestServer(t)
	defer cleanup()

	id := testcluster.RegisterTestTaskManager(t, cl, "host", 8)

	client := NewClient(server.URL, "testtoken")

	doc, err := client.ListTaskManagers(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.TaskManagers, 1)

	doc, err = client.GetTaskManager(context.Background(), id.String())
	require.NoError(t, err)
	require.Len(t, doc.TaskManagers, 1)

	status, err := client.GetClusterStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, 8, status.TotalSlots)
}

func TestClientBadToken(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	client := NewClient(server.URL, "WRONG")
	_, err := client.ListTaskManagers(context.Background())
	require.Error(t, err)
}
