package agent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskgrid-io/taskgrid/internal/agent"
	"github.com/taskgrid-io/taskgrid/internal/metrics"
	"github.com/taskgrid-io/taskgrid/internal/testcluster"
	"github.com/taskgrid-io/taskgrid/internal/testutil"
)

func TestAgentRegistersAndPublishes(t *testing.T) {
	cl, cleanup := testcluster.SetupEtcdCluster(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := agent.New(cl, agent.Config{
		Address:         "agent-host",
		DataPort:        6121,
		SlotCount:       2,
		NetworkSegments: 512,
		HeartbeatPeriod: 200 * time.Millisecond,
		MetricsPeriod:   200 * time.Millisecond,
	}, testutil.NewTestLogger(false))

	done := make(chan struct{})
	go func() {
		_ = a.Run(ctx)
		close(done)
	}()

	testutil.WaitFor(t, func() bool {
		taskManagers, err := cl.ListTaskManagers(context.Background())
		return err == nil && len(taskManagers) == 1
	}, 5*time.Second, 50*time.Millisecond, "agent registered")

	testutil.WaitFor(t, func() bool {
		all, err := cl.AllMetricCounters(context.Background())
		if err != nil || len(all) != 1 {
			return false
		}
		for _, counters := range all {
			if _, ok := counters[metrics.KeyHeapUsed]; !ok {
				return false
			}
			if counters[metrics.KeySegmentsTotal] != "512" {
				return false
			}
			if _, ok := counters[metrics.KeyDirectUsed]; !ok {
				return false
			}
		}
		return true
	}, 5*time.Second, 50*time.Millisecond, "agent published counters")

	taskManagers, err := cl.ListTaskManagers(context.Background())
	require.NoError(t, err)
	require.Equal(t, "agent-host", taskManagers[0].Address)
	require.Equal(t, 2, taskManagers[0].SlotsNumber)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("agent did not stop after cancel")
	}
}
