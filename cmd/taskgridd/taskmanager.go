package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskgrid-io/taskgrid/cmd/taskgridd/config"
	"github.com/taskgrid-io/taskgrid/internal/agent"
)

var taskManagerCmd = &cobra.Command{
	Use:   "taskmanager",
	Short: "Run as task manager node (registers, heartbeats, publishes metrics)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		return runTaskManager(cfg)
	},
}

// Task manager node: connect to etcd, launch the agent loops
func runTaskManager(cfg *config.ClusterConfig) error {
	ctx := cmdContext()

	fmt.Printf("Starting task manager node: %s\n", cfg.Node.ID)
	cl, err := newCluster(cfg)
	if err != nil {
		return fmt.Errorf("boot failure: %w", err)
	}
	defer cl.Close()

	logger := log.New(os.Stdout, "[agent] ", log.LstdFlags)

	address := cfg.TaskManager.Address
	if address == "" {
		address, _ = os.Hostname()
	}

	a := agent.New(cl, agent.Config{
		Address:         address,
		DataPort:        cfg.TaskManager.DataPort,
		SlotCount:       cfg.TaskManager.Slots,
		ManagedMemory:   cfg.TaskManager.ManagedMemoryMB << 20,
		NetworkSegments: cfg.TaskManager.NetworkSegments,
		HeartbeatPeriod: cfg.TaskManager.HeartbeatPeriod,
		MetricsPeriod:   cfg.TaskManager.MetricsPeriod,
	}, logger)

	err = a.Run(ctx)
	if ctx.Err() != nil {
		return nil // clean shutdown
	}
	return err
}
