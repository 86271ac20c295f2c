package taskmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/metrics"
)

// MetricStore is the slice of the metric cache the builder needs.
// Implemented by *metrics.Cache.
type MetricStore interface {
	Update(ctx context.Context)
	Snapshot(id string) (*metrics.TaskManagerSnapshot, bool)
}

// Document is the response to a taskmanagers query.
type Document struct {
	TaskManagers []Detail `json:"taskmanagers"`
}

// Detail is one task manager entry. Metrics is set only when the request was
// scoped to a single id and a snapshot was found for it.
type Detail struct {
	ID                     string   `json:"id"`
	Path                   string   `json:"path"`
	DataPort               int      `json:"dataPort"`
	TimeSinceLastHeartbeat int64    `json:"timeSinceLastHeartbeat"`
	SlotsNumber            int      `json:"slotsNumber"`
	FreeSlots              int      `json:"freeSlots"`
	CPUCores               float64  `json:"cpuCores"`
	PhysicalMemory         int64    `json:"physicalMemory"`
	FreeMemory             int64    `json:"freeMemory"`
	ManagedMemory          int64    `json:"managedMemory"`
	Metrics                *Metrics `json:"metrics,omitempty"`
}

// Metrics mixes parsed and raw counters on purpose: only the six heap and
// non-heap values are arithmetic (they feed the total sums); the buffer and
// segment counters pass through as the strings the agent published.
type Metrics struct {
	HeapCommitted    int64 `json:"heapCommitted"`
	HeapUsed         int64 `json:"heapUsed"`
	HeapMax          int64 `json:"heapMax"`
	NonHeapCommitted int64 `json:"nonHeapCommitted"`
	NonHeapUsed      int64 `json:"nonHeapUsed"`
	NonHeapMax       int64 `json:"nonHeapMax"`
	TotalCommitted   int64 `json:"totalCommitted"`
	TotalUsed        int64 `json:"totalUsed"`
	TotalMax         int64 `json:"totalMax"`

	DirectCount string `json:"directCount"`
	DirectUsed  string `json:"directUsed"`
	DirectMax   string `json:"directMax"`
	MappedCount string `json:"mappedCount"`
	MappedUsed  string `json:"mappedUsed"`
	MappedMax   string `json:"mappedMax"`

	MemorySegmentsAvailable string `json:"memorySegmentsAvailable"`
	MemorySegmentsTotal     string `json:"memorySegmentsTotal"`

	GarbageCollectors []GCStat `json:"garbageCollectors"`
}

// GCStat is a per-collector (count, time) pair. Emitted only when both
// counters exist for the collector; there is no partial entry.
type GCStat struct {
	Name  string `json:"name"`
	Count string `json:"count"`
	Time  string `json:"time"`
}

// Build assembles the complete response document for the resolved records.
// When scopedToOne is set, the single record present is enriched with a
// metrics snapshot: the store is refreshed best-effort and the snapshot for
// the record's id is read; no snapshot means no metrics object, never an
// error. Only an encoding failure is fatal, and then no partial document is
// returned.
func Build(ctx context.Context, records []cluster.TaskManagerInfo, scopedToOne bool, store MetricStore) (string, error) {
	now := time.Now()
	doc := Document{TaskManagers: make([]Detail, 0, len(records))}
	for _, rec := range records {
		d := Detail{
			ID:                     rec.ID.String(),
			Path:                   rec.Address,
			DataPort:               rec.DataPort,
			TimeSinceLastHeartbeat: now.Sub(rec.LastHeartbeat).Milliseconds(),
			SlotsNumber:            rec.SlotsNumber,
			FreeSlots:              rec.FreeSlots,
			CPUCores:               rec.CPUCores,
			PhysicalMemory:         rec.PhysicalMemory,
			FreeMemory:             rec.FreeMemory,
			ManagedMemory:          rec.ManagedMemory,
		}
		// Full-cluster listings never carry per-entry metric blobs; that
		// keeps the payload bounded, so only the scoped form is enriched.
		if scopedToOne && store != nil {
			store.Update(ctx)
			if snap, ok := store.Snapshot(d.ID); ok {
				d.Metrics = buildMetrics(snap)
			}
		}
		doc.TaskManagers = append(doc.TaskManagers, d)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode task manager response: %w", err)
	}
	return string(b), nil
}

func buildMetrics(snap *metrics.TaskManagerSnapshot) *Metrics {
	m := &Metrics{
		HeapCommitted:    counter(snap, metrics.KeyHeapCommitted),
		HeapUsed:         counter(snap, metrics.KeyHeapUsed),
		HeapMax:          counter(snap, metrics.KeyHeapMax),
		NonHeapCommitted: counter(snap, metrics.KeyNonHeapCommitted),
		NonHeapUsed:      counter(snap, metrics.KeyNonHeapUsed),
		NonHeapMax:       counter(snap, metrics.KeyNonHeapMax),

		DirectCount: snap.Metric(metrics.KeyDirectCount, "0"),
		DirectUsed:  snap.Metric(metrics.KeyDirectUsed, "0"),
		DirectMax:   snap.Metric(metrics.KeyDirectMax, "0"),
		MappedCount: snap.Metric(metrics.KeyMappedCount, "0"),
		MappedUsed:  snap.Metric(metrics.KeyMappedUsed, "0"),
		MappedMax:   snap.Metric(metrics.KeyMappedMax, "0"),

		MemorySegmentsAvailable: snap.Metric(metrics.KeySegmentsAvailable, "0"),
		MemorySegmentsTotal:     snap.Metric(metrics.KeySegmentsTotal, "0"),

		GarbageCollectors: make([]GCStat, 0),
	}
	m.TotalCommitted = m.HeapCommitted + m.NonHeapCommitted
	m.TotalUsed = m.HeapUsed + m.NonHeapUsed
	m.TotalMax = m.HeapMax + m.NonHeapMax

	for _, name := range snap.GarbageCollectorNames() {
		count, haveCount := snap.LookupMetric(metrics.GCCountKey(name))
		gcTime, haveTime := snap.LookupMetric(metrics.GCTimeKey(name))
		if haveCount && haveTime {
			m.GarbageCollectors = append(m.GarbageCollectors, GCStat{
				Name:  name,
				Count: count,
				Time:  gcTime,
			})
		}
	}
	return m
}

// counter reads a numeric counter with absent-as-zero semantics. Values that
// fail to parse also count as zero rather than poisoning the response.
func counter(snap *metrics.TaskManagerSnapshot, name string) int64 {
	v, err := strconv.ParseInt(snap.Metric(name, "0"), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
