package agent

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskgrid-io/taskgrid/internal/metrics"
)

func TestCollectCountersNumeric(t *testing.T) {
	counters := collectCounters(Config{NetworkSegments: 1024})

	for _, key := range []string{
		metrics.KeyHeapUsed,
		metrics.KeyHeapCommitted,
		metrics.KeyHeapMax,
		metrics.KeyNonHeapUsed,
		metrics.KeyNonHeapCommitted,
		metrics.KeyNonHeapMax,
	} {
		v, ok := counters[key]
		require.True(t, ok, "missing counter %s", key)
		_, err := strconv.ParseInt(v, 10, 64)
		require.NoError(t, err, "counter %s not numeric: %q", key, v)
	}
}

func TestCollectCountersBufferAndSegmentKeys(t *testing.T) {
	counters := collectCounters(Config{NetworkSegments: 1024})

	// Every counter the scoped taskmanagers response renders must be
	// published, raw passthrough ones included.
	for _, key := range []string{
		metrics.KeyDirectCount,
		metrics.KeyDirectUsed,
		metrics.KeyDirectMax,
		metrics.KeyMappedCount,
		metrics.KeyMappedUsed,
		metrics.KeyMappedMax,
		metrics.KeySegmentsAvailable,
		metrics.KeySegmentsTotal,
	} {
		_, ok := counters[key]
		require.True(t, ok, "missing counter %s", key)
	}

	require.Equal(t, "1024", counters[metrics.KeySegmentsTotal])
	require.Equal(t, "1024", counters[metrics.KeySegmentsAvailable])
}

func TestCollectCountersGCPair(t *testing.T) {
	counters := collectCounters(Config{})

	_, haveCount := counters[metrics.GCCountKey("gc")]
	_, haveTime := counters[metrics.GCTimeKey("gc")]
	require.True(t, haveCount)
	require.True(t, haveTime)
}

func TestDescribeHost(t *testing.T) {
	info, err := describeHost(Config{Address: "host-1", DataPort: 6121, SlotCount: 2, ManagedMemory: 1 << 30})
	require.NoError(t, err)
	require.Equal(t, "host-1", info.Address)
	require.Equal(t, 2, info.SlotsNumber)
	require.Equal(t, 2, info.FreeSlots)
	require.Greater(t, info.CPUCores, 0.0)
	require.Greater(t, info.PhysicalMemory, int64(0))
	require.Equal(t, int64(1<<30), info.ManagedMemory)
}
