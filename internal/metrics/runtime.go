package metrics

import "runtime"

// RuntimeSnapshot is a point-in-time reading of the Go runtime, reported by
// the health endpoint.
type RuntimeSnapshot struct {
	HeapAlloc  uint64 `json:"heap_alloc_bytes" cbor:"heap_alloc_bytes"`
	Sys        uint64 `json:"sys_bytes" cbor:"sys_bytes"`
	NumGC      uint32 `json:"num_gc" cbor:"num_gc"`
	Goroutines int    `json:"goroutines" cbor:"goroutines"`
}

// ReadRuntime takes a snapshot.
func ReadRuntime() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}
