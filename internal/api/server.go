package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/metrics"
	"github.com/taskgrid-io/taskgrid/internal/taskmanager"
)

// Server wraps the monitoring HTTP API and its config/state
type Server struct {
	Cluster cluster.Cluster
	Metrics *metrics.Cache
	Addr    string
	Logger  *log.Logger
	Config  *Config
	server  *http.Server
}

type Config struct {
	ListenAddr string        `mapstructure:"listen_addr"`
	AuthTokens []string      `mapstructure:"auth_tokens"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func NewServer(cluster cluster.Cluster, cache *metrics.Cache, config Config, logger *log.Logger) *Server {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Server{
		Cluster: cluster,
		Metrics: cache,
		Addr:    config.ListenAddr,
		Config:  &config,
		Logger:  logger,
	}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	// Health endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	protected := http.NewServeMux()
	resolver := taskmanager.NewResolver(s.Cluster, s.Config.Timeout)
	RegisterTaskManagerHandlers(protected, resolver, s.Metrics)
	RegisterStatusHandler(protected, s.Cluster)

	mux.Handle("/api/", TokenAuthMiddleware(s.Config.AuthTokens, protected))

	s.server = &http.Server{
		Addr:    s.Addr,
		Handler: mux,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	s.Logger.Printf("API server listening on %s", s.Addr)
	return s.server.ListenAndServe()
}
