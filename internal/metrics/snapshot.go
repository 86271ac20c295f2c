package metrics

import (
	"sort"
	"strings"
)

// TaskManagerSnapshot is the set of counter name/value pairs known for one
// task manager at read time. Snapshots are immutable once built; the cache
// swaps whole snapshots on refresh.
type TaskManagerSnapshot struct {
	counters map[string]string
	gcNames  []string
}

func NewTaskManagerSnapshot(counters map[string]string) *TaskManagerSnapshot {
	return &TaskManagerSnapshot{
		counters: counters,
		gcNames:  collectorNames(counters),
	}
}

// Metric returns the counter value, or def when the counter is absent.
// Absence is normal: agents publish opportunistically.
func (s *TaskManagerSnapshot) Metric(name, def string) string {
	if v, ok := s.counters[name]; ok {
		return v
	}
	return def
}

func (s *TaskManagerSnapshot) LookupMetric(name string) (string, bool) {
	v, ok := s.counters[name]
	return v, ok
}

// GarbageCollectorNames returns the collector names seen among the counters,
// in the stable (lexicographic) order the counters were stored under.
func (s *TaskManagerSnapshot) GarbageCollectorNames() []string {
	return s.gcNames
}

func collectorNames(counters map[string]string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for key := range counters {
		if !strings.HasPrefix(key, KeyGCPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, KeyGCPrefix)
		switch {
		case strings.HasSuffix(name, KeyGCCountSuffix):
			name = strings.TrimSuffix(name, KeyGCCountSuffix)
		case strings.HasSuffix(name, KeyGCTimeSuffix):
			name = strings.TrimSuffix(name, KeyGCTimeSuffix)
		default:
			continue
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
