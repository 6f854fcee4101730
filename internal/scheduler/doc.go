// Package scheduler drives many boolean-QA generation sessions over one
// shared, capacity-limited decode context. It is structured into small files
// by concern:
//
//   - scheduler.go: core Scheduler type, round loop (admit/decode/advance/drain).
//   - config.go: Config and package defaults; victim selection policies.
//   - queue.go: FIFO task queue (owned slice, requeue at back).
//   - session.go: per-task generation state machine and disposal.
//   - confusion.go: four-way outcome counters and final report.
//   - events.go: pluggable event sink (no-op default, zerolog adapter).
//   - eventpub_memory.go: in-memory sink for tests.
//   - status.go: read-only status snapshot for the reporting layer.
//   - metrics.go: prometheus counters and gauges.
//
// The loop is single-threaded and round-based: the shared DecodeRound call is
// the only blocking point, and the admit/evict/drain phases form one critical
// section per round. Status() may be called from other goroutines at any
// cadence.
package scheduler
