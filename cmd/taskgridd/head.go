package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskgrid-io/taskgrid/cmd/taskgridd/config"
	"github.com/taskgrid-io/taskgrid/internal/api"
	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/metrics"
)

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Run as cluster head node (monitoring API)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		return runHead(cfg)
	},
}

func runHead(cfg *config.ClusterConfig) error {
	ctx := cmdContext()

	cl, err := newCluster(cfg)
	if err != nil {
		return fmt.Errorf("boot failure: %w", err)
	}
	defer cl.Close()

	logger := log.New(os.Stdout, "[api] ", log.LstdFlags)
	cache := metrics.NewCache(cl, metrics.DefaultRefreshInterval, logger)
	apiServer := api.NewServer(cl, cache, cfg.Api, logger)

	go headMonitorLoop(ctx, cl, 30*time.Second, logger)

	logger.Printf("Starting API server on %s", cfg.Api.ListenAddr)
	return apiServer.Start(ctx)
}

// headMonitorLoop periodically logs the registered set and flags task
// managers whose heartbeat is going stale (the lease will reap them, this is
// just operator visibility).
func headMonitorLoop(ctx context.Context, cl cluster.Cluster, pollInterval time.Duration, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(pollInterval):
			taskManagers, err := cl.ListTaskManagers(ctx)
			if err != nil {
				logger.Printf("Error listing task managers: %v", err)
				continue
			}
			logger.Printf("%d task manager(s) registered", len(taskManagers))
			for _, tm := range taskManagers {
				if since := time.Since(tm.LastHeartbeat); since > 10*time.Second {
					logger.Printf("Task manager %s heartbeat is %s old", tm.ID, since.Round(time.Second))
				}
			}
		}
	}
}
