package server

import "sync/atomic"

// RoomMetrics tracks a room's runtime counters for /metrics. All fields are
// bumped with atomics because the HTTP handler reads them while the room
// goroutine writes.
type RoomMetrics struct {
	TickCount       int64
	TotalTickNs     int64
	InputsBuffered  int64
	InputsDropped   int64
	ActionsRejected int64
	Joins           int64
	Leaves          int64
}

func (m *RoomMetrics) IncInput()        { atomic.AddInt64(&m.InputsBuffered, 1) }
func (m *RoomMetrics) IncInputDropped() { atomic.AddInt64(&m.InputsDropped, 1) }
func (m *RoomMetrics) IncRejected()     { atomic.AddInt64(&m.ActionsRejected, 1) }
func (m *RoomMetrics) IncJoin()         { atomic.AddInt64(&m.Joins, 1) }
func (m *RoomMetrics) IncLeave()        { atomic.AddInt64(&m.Leaves, 1) }

func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot returns a read-only copy for HTTP output.
func (m *RoomMetrics) Snapshot() map[string]any {
	ticks := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":       ticks,
		"avg_tick_ms":      avgMs,
		"inputs_buffered":  atomic.LoadInt64(&m.InputsBuffered),
		"inputs_dropped":   atomic.LoadInt64(&m.InputsDropped),
		"actions_rejected": atomic.LoadInt64(&m.ActionsRejected),
		"joins":            atomic.LoadInt64(&m.Joins),
		"leaves":           atomic.LoadInt64(&m.Leaves),
	}
}
