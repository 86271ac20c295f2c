package agent

import (
	"os"
	"runtime"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/metrics"
)

// describeHost builds the registry record for this node from host inspection
// plus the configured slot and memory settings.
func describeHost(cfg Config) (cluster.TaskManagerInfo, error) {
	cores, err := cpu.Counts(true)
	if err != nil {
		return cluster.TaskManagerInfo{}, err
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return cluster.TaskManagerInfo{}, err
	}
	return cluster.TaskManagerInfo{
		Address:        cfg.Address,
		DataPort:       cfg.DataPort,
		SlotsNumber:    cfg.SlotCount,
		FreeSlots:      cfg.SlotCount,
		CPUCores:       float64(cores),
		PhysicalMemory: int64(vm.Total),
		FreeMemory:     int64(vm.Available),
		ManagedMemory:  cfg.ManagedMemory,
	}, nil
}

// collectCounters samples the runtime and the process and returns the
// counter batch to publish. Heap and non-heap values are numeric strings; GC
// pause time is reported in milliseconds. Buffer and segment counters are
// raw passthrough values downstream, so no arithmetic is promised for them.
func collectCounters(cfg Config) map[string]string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	nonHeapUsed := ms.StackInuse + ms.MSpanInuse + ms.MCacheInuse
	nonHeapCommitted := ms.StackSys + ms.MSpanSys + ms.MCacheSys + ms.OtherSys

	// Off-heap buffers: the runtime's own non-heap memory is reported as a
	// single direct pool; the process's OS-level mappings are the mapped
	// pool.
	directUsed := ms.GCSys + ms.BuckHashSys + ms.OtherSys
	directMax := ms.Sys - ms.HeapSys
	mappedCount, mappedUsed, mappedMax := mappedMemory()

	return map[string]string{
		metrics.KeyHeapUsed:      formatUint(ms.HeapAlloc),
		metrics.KeyHeapCommitted: formatUint(ms.HeapSys),
		metrics.KeyHeapMax:       formatUint(ms.Sys),

		metrics.KeyNonHeapUsed:      formatUint(nonHeapUsed),
		metrics.KeyNonHeapCommitted: formatUint(nonHeapCommitted),
		metrics.KeyNonHeapMax:       formatUint(nonHeapCommitted),

		metrics.KeyDirectCount: "1",
		metrics.KeyDirectUsed:  formatUint(directUsed),
		metrics.KeyDirectMax:   formatUint(directMax),

		metrics.KeyMappedCount: formatUint(mappedCount),
		metrics.KeyMappedUsed:  formatUint(mappedUsed),
		metrics.KeyMappedMax:   formatUint(mappedMax),

		// The whole segment pool is free until a data plane claims it.
		metrics.KeySegmentsAvailable: strconv.Itoa(cfg.NetworkSegments),
		metrics.KeySegmentsTotal:     strconv.Itoa(cfg.NetworkSegments),

		metrics.GCCountKey("gc"): strconv.FormatUint(uint64(ms.NumGC), 10),
		metrics.GCTimeKey("gc"):  formatUint(ms.PauseTotalNs / 1e6),
	}
}

// mappedMemory aggregates the process's memory-mapped regions. Zero values
// on platforms where the map table cannot be read.
func mappedMemory() (count, rss, size uint64) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, 0, 0
	}
	maps, err := p.MemoryMaps(false)
	if err != nil || maps == nil {
		return 0, 0, 0
	}
	for _, m := range *maps {
		rss += m.Rss
		size += m.Size
	}
	return uint64(len(*maps)), rss, size
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
