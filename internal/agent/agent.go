// Package agent runs on a task manager node: it registers the node in the
// cluster registry, keeps its lease alive, and publishes runtime metric
// counters for the monitoring API to report.
package agent

import (
	"context"
	"log"
	"time"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
)

type Config struct {
	Address         string
	DataPort        int
	SlotCount       int
	ManagedMemory   int64
	NetworkSegments int
	HeartbeatPeriod time.Duration
	MetricsPeriod   time.Duration
}

type Agent struct {
	ID      cluster.ID
	Cluster cluster.Cluster
	Config  Config
	Logger  *log.Logger
}

func New(cl cluster.Cluster, cfg Config, logger *log.Logger) *Agent {
	if cfg.HeartbeatPeriod <= 0 {
		cfg.HeartbeatPeriod = 5 * time.Second
	}
	if cfg.MetricsPeriod <= 0 {
		cfg.MetricsPeriod = 10 * time.Second
	}
	if cfg.SlotCount <= 0 {
		cfg.SlotCount = 1
	}
	if cfg.NetworkSegments <= 0 {
		cfg.NetworkSegments = 2048
	}
	return &Agent{
		Cluster: cl,
		Config:  cfg,
		Logger:  logger,
	}
}

// Run registers the task manager and drives the heartbeat and metric publish
// loops until ctx is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.register(ctx); err != nil {
		return err
	}
	a.Logger.Printf("registered task manager %s", a.ID)

	heartbeat := time.NewTicker(a.Config.HeartbeatPeriod)
	defer heartbeat.Stop()
	publish := time.NewTicker(a.Config.MetricsPeriod)
	defer publish.Stop()

	// Publish a first batch right away so a freshly joined node shows up
	// with counters before the first tick.
	a.publishMetrics(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-heartbeat.C:
			if err := a.Cluster.Heartbeat(ctx, a.ID); err != nil {
				a.Logger.Printf("heartbeat failed: %v, re-registering", err)
				if err := a.register(ctx); err != nil {
					a.Logger.Printf("re-register failed: %v", err)
				}
			}
		case <-publish.C:
			a.publishMetrics(ctx)
		}
	}
}

func (a *Agent) register(ctx context.Context) error {
	info, err := describeHost(a.Config)
	if err != nil {
		return err
	}
	info.ID = a.ID // reuse the identity across re-registrations
	id, err := a.Cluster.RegisterTaskManager(ctx, info)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (a *Agent) publishMetrics(ctx context.Context) {
	if err := a.Cluster.PublishMetrics(ctx, a.ID, collectCounters(a.Config)); err != nil {
		a.Logger.Printf("metric publish failed: %v", err)
	}
}
