package testcluster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/server/v3/embed"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/testutil"
)

// Start an embedded etcd cluster for test, return cluster + cleanup
func SetupEtcdCluster(t *testing.T) (cluster.Cluster, func()) {
	t.Helper()
	cfg := embed.NewConfig()
	cfg.Dir = t.TempDir()
	cfg.Logger = "zap"
	cfg.LogLevel = "error"
	e, err := embed.StartEtcd(cfg)
	require.NoError(t, err)

	select {
	case <-e.Server.ReadyNotify():
	case <-time.After(10 * time.Second):
		t.Fatal("etcd server did not become ready in time")
	}

	cl, err := cluster.NewEtcdCluster(cluster.EtcdConfig{
		Endpoints:   []string{e.Clients[0].Addr().String()},
		DialTimeout: 2 * time.Second,
		Prefix:      "/taskgrid_test_" + testutil.RandString(5),
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = cl.Close()
		e.Close()
	}
	return cl, cleanup
}

// RegisterTestTaskManager adds a task manager with distinctive resource
// descriptors and returns its id.
func RegisterTestTaskManager(t *testing.T, cl cluster.Cluster, address string, slots int) cluster.ID {
	t.Helper()
	id, err := cl.RegisterTaskManager(context.Background(), cluster.TaskManagerInfo{
		Address:        address,
		DataPort:       6121,
		SlotsNumber:    slots,
		FreeSlots:      slots,
		CPUCores:       4,
		PhysicalMemory: 16 << 30,
		FreeMemory:     8 << 30,
		ManagedMemory:  4 << 30,
	})
	require.NoError(t, err)
	return id
}
