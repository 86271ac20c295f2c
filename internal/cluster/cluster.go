package cluster

import (
	"context"

	clientv3 "go.etcd.io/etcd/client/v3"
)

type Cluster interface {
	// Task manager registry
	RegisterTaskManager(ctx context.Context, info TaskManagerInfo) (ID, error)
	ListTaskManagers(ctx context.Context) ([]TaskManagerInfo, error)
	GetTaskManager(ctx context.Context, id ID) (TaskManagerInfo, bool, error)
	Heartbeat(ctx context.Context, id ID) error

	// Metric counters published by task managers
	PublishMetrics(ctx context.Context, id ID, counters map[string]string) error
	AllMetricCounters(ctx context.Context) (map[string]map[string]string, error)

	GetClusterStatus(ctx context.Context) (*ClusterStatus, error)

	Prefix() string
	Client() *clientv3.Client
	Close() error
}
