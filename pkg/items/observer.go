package items

import (
	"sync/atomic"
	"time"
)

// Observer defines hooks for observability and metrics collection.
// Hooks run after the store lock is released and must not call back into
// the store synchronously.
type Observer interface {
	// OnCreate is called after a successful create operation.
	OnCreate(itemID int64, duration time.Duration)

	// OnRead is called after a successful get operation.
	OnRead(itemID int64, duration time.Duration)

	// OnList is called after a list operation.
	OnList(count int, duration time.Duration)

	// OnUpdate is called after a successful update operation.
	OnUpdate(itemID int64, duration time.Duration)

	// OnDelete is called after a successful delete operation.
	OnDelete(itemID int64, duration time.Duration)

	// OnError is called when an operation fails.
	OnError(operation string, err error)

	// OnReset is called after the store is reset.
	OnReset(count int, duration time.Duration)
}

// NoopObserver is a no-op implementation of Observer.
type NoopObserver struct{}

func (n *NoopObserver) OnCreate(itemID int64, duration time.Duration) {}
func (n *NoopObserver) OnRead(itemID int64, duration time.Duration)   {}
func (n *NoopObserver) OnList(count int, duration time.Duration)      {}
func (n *NoopObserver) OnUpdate(itemID int64, duration time.Duration) {}
func (n *NoopObserver) OnDelete(itemID int64, duration time.Duration) {}
func (n *NoopObserver) OnError(operation string, err error)           {}
func (n *NoopObserver) OnReset(count int, duration time.Duration)     {}

// MultiObserver fans every hook out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnCreate(itemID int64, duration time.Duration) {
	for _, o := range m {
		o.OnCreate(itemID, duration)
	}
}

func (m MultiObserver) OnRead(itemID int64, duration time.Duration) {
	for _, o := range m {
		o.OnRead(itemID, duration)
	}
}

func (m MultiObserver) OnList(count int, duration time.Duration) {
	for _, o := range m {
		o.OnList(count, duration)
	}
}

func (m MultiObserver) OnUpdate(itemID int64, duration time.Duration) {
	for _, o := range m {
		o.OnUpdate(itemID, duration)
	}
}

func (m MultiObserver) OnDelete(itemID int64, duration time.Duration) {
	for _, o := range m {
		o.OnDelete(itemID, duration)
	}
}

func (m MultiObserver) OnError(operation string, err error) {
	for _, o := range m {
		o.OnError(operation, err)
	}
}

func (m MultiObserver) OnReset(count int, duration time.Duration) {
	for _, o := range m {
		o.OnReset(count, duration)
	}
}

// StatsObserver counts store operations.
// All counters use atomic operations, so it is safe for concurrent use.
type StatsObserver struct {
	createCount    atomic.Int64
	readCount      atomic.Int64
	listCount      atomic.Int64
	updateCount    atomic.Int64
	deleteCount    atomic.Int64
	errorCount     atomic.Int64
	resetCount     atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewStatsObserver creates a new StatsObserver.
func NewStatsObserver() *StatsObserver {
	return &StatsObserver{}
}

func (m *StatsObserver) OnCreate(itemID int64, duration time.Duration) {
	m.createCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *StatsObserver) OnRead(itemID int64, duration time.Duration) {
	m.readCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *StatsObserver) OnList(count int, duration time.Duration) {
	m.listCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *StatsObserver) OnUpdate(itemID int64, duration time.Duration) {
	m.updateCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *StatsObserver) OnDelete(itemID int64, duration time.Duration) {
	m.deleteCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

func (m *StatsObserver) OnError(operation string, err error) {
	m.errorCount.Add(1)
}

func (m *StatsObserver) OnReset(count int, duration time.Duration) {
	m.resetCount.Add(1)
	m.totalLatencyNs.Add(int64(duration))
}

// Snapshot returns a point-in-time copy of the counters.
func (m *StatsObserver) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		CreateCount:  m.createCount.Load(),
		ReadCount:    m.readCount.Load(),
		ListCount:    m.listCount.Load(),
		UpdateCount:  m.updateCount.Load(),
		DeleteCount:  m.deleteCount.Load(),
		ErrorCount:   m.errorCount.Load(),
		ResetCount:   m.resetCount.Load(),
		TotalLatency: time.Duration(m.totalLatencyNs.Load()),
	}
}

// StatsSnapshot is a point-in-time snapshot of store counters.
type StatsSnapshot struct {
	CreateCount  int64         `json:"createCount"`
	ReadCount    int64         `json:"readCount"`
	ListCount    int64         `json:"listCount"`
	UpdateCount  int64         `json:"updateCount"`
	DeleteCount  int64         `json:"deleteCount"`
	ErrorCount   int64         `json:"errorCount"`
	ResetCount   int64         `json:"resetCount"`
	TotalLatency time.Duration `json:"totalLatencyNs"`
}

// TotalOperations returns the total number of successful operations.
func (s StatsSnapshot) TotalOperations() int64 {
	return s.CreateCount + s.ReadCount + s.ListCount + s.UpdateCount + s.DeleteCount
}
