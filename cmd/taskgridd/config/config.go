package config

import (
	"time"

	"github.com/taskgrid-io/taskgrid/internal/api"
)

type NodeConfig struct {
	ID string `mapstructure:"id"`
}

type EtcdConfig struct {
	Endpoints []string `mapstructure:"endpoints"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Prefix    string   `mapstructure:"prefix"`
}

type TaskManagerConfig struct {
	Address         string        `mapstructure:"address"`
	DataPort        int           `mapstructure:"data_port"`
	Slots           int           `mapstructure:"slots"`
	ManagedMemoryMB int64         `mapstructure:"managed_memory_mb"`
	NetworkSegments int           `mapstructure:"network_segments"`
	HeartbeatPeriod time.Duration `mapstructure:"heartbeat_period"`
	MetricsPeriod   time.Duration `mapstructure:"metrics_period"`
}

type ClusterConfig struct {
	Node        NodeConfig        `mapstructure:"node"`
	Api         api.Config        `mapstructure:"api"`
	Etcd        EtcdConfig        `mapstructure:"etcd"`
	TaskManager TaskManagerConfig `mapstructure:"taskmanager"`
}
