package metrics

// Counter names published by task manager agents. Dot-namespaced; the cache
// and the response builder treat them as opaque strings except where noted.
const (
	KeyHeapUsed      = "status.runtime.memory.heap.used"
	KeyHeapCommitted = "status.runtime.memory.heap.committed"
	KeyHeapMax       = "status.runtime.memory.heap.max"

	KeyNonHeapUsed      = "status.runtime.memory.nonheap.used"
	KeyNonHeapCommitted = "status.runtime.memory.nonheap.committed"
	KeyNonHeapMax       = "status.runtime.memory.nonheap.max"

	KeyDirectCount = "status.runtime.memory.direct.count"
	KeyDirectUsed  = "status.runtime.memory.direct.used"
	KeyDirectMax   = "status.runtime.memory.direct.max"

	KeyMappedCount = "status.runtime.memory.mapped.count"
	KeyMappedUsed  = "status.runtime.memory.mapped.used"
	KeyMappedMax   = "status.runtime.memory.mapped.max"

	KeySegmentsAvailable = "status.network.segments.available"
	KeySegmentsTotal     = "status.network.segments.total"

	// Per-collector counters are KeyGCPrefix + name + KeyGCCountSuffix/KeyGCTimeSuffix.
	KeyGCPrefix      = "status.runtime.gc."
	KeyGCCountSuffix = ".count"
	KeyGCTimeSuffix  = ".time"
)

func GCCountKey(collector string) string {
	return KeyGCPrefix + collector + KeyGCCountSuffix
}

func GCTimeKey(collector string) string {
	return KeyGCPrefix + collector + KeyGCTimeSuffix
}
