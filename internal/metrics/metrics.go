package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Domain counter names
const (
	ClientsCreated       = "clients_created"
	OrdersCreated        = "orders_created"
	InvoicesCreated      = "invoices_created"
	OffersConverted      = "offers_converted"
	GuaranteesAccepted   = "guarantees_accepted"
	GuaranteesExpired    = "guarantees_expired"
	VouchersApproved     = "vouchers_approved"
	LoginFailures        = "login_failures"
	EventsPublishFailed  = "events_publish_failed"
	SearchIndexingFailed = "search_indexing_failed"
)

// TimerMetric captures timing information
type TimerMetric struct {
	Count         int64   `json:"count"`
	TotalTimeMs   int64   `json:"total_time_ms"`
	AverageTimeMs float64 `json:"average_time_ms"`
	MinTimeMs     int64   `json:"min_time_ms"`
	MaxTimeMs     int64   `json:"max_time_ms"`
}

// ErrorRateMetric captures error rates
type ErrorRateMetric struct {
	Total     int64   `json:"total"`
	Errors    int64   `json:"errors"`
	ErrorRate float64 `json:"error_rate"`
}

type timer struct {
	count, total, min, max int64
}

type errorRate struct {
	total, errors int64
}

// Metrics is an in-process metrics collector
type Metrics struct {
	mu         sync.RWMutex
	counters   map[string]*int64
	timers     map[string]*timer
	errorRates map[string]*errorRate
	health     map[string]*int64
	startTime  time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		counters:   make(map[string]*int64),
		timers:     make(map[string]*timer),
		errorRates: make(map[string]*errorRate),
		health:     make(map[string]*int64),
		startTime:  time.Now(),
	}
}

// getOrCreate looks up name under the read lock and creates it under the write lock
func getOrCreate[T any](m *Metrics, table map[string]*T, name string, init func() *T) *T {
	m.mu.RLock()
	v, ok := table[name]
	m.mu.RUnlock()
	if ok {
		return v
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok = table[name]; !ok {
		v = init()
		table[name] = v
	}
	return v
}

// IncrementCounter increments a counter by 1
func (m *Metrics) IncrementCounter(name string) {
	m.IncrementCounterBy(name, 1)
}

// IncrementCounterBy increments a counter by value
func (m *Metrics) IncrementCounterBy(name string, value int64) {
	if m == nil {
		return
	}
	c := getOrCreate(m, m.counters, name, func() *int64 { return new(int64) })
	atomic.AddInt64(c, value)
}

// RecordTimer records a timing measurement
func (m *Metrics) RecordTimer(name string, durationMs int64) {
	if m == nil {
		return
	}
	t := getOrCreate(m, m.timers, name, func() *timer { return &timer{min: math.MaxInt64} })

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.total, durationMs)
	for {
		cur := atomic.LoadInt64(&t.min)
		if durationMs >= cur || atomic.CompareAndSwapInt64(&t.min, cur, durationMs) {
			break
		}
	}
	for {
		cur := atomic.LoadInt64(&t.max)
		if durationMs <= cur || atomic.CompareAndSwapInt64(&t.max, cur, durationMs) {
			break
		}
	}
}

// RecordSuccess records a successful operation for error rate tracking
func (m *Metrics) RecordSuccess(name string) {
	m.recordErrorRate(name, false)
}

// RecordError records a failed operation for error rate tracking
func (m *Metrics) RecordError(name string) {
	m.recordErrorRate(name, true)
}

func (m *Metrics) recordErrorRate(name string, failed bool) {
	if m == nil {
		return
	}
	e := getOrCreate(m, m.errorRates, name, func() *errorRate { return &errorRate{} })
	atomic.AddInt64(&e.total, 1)
	if failed {
		atomic.AddInt64(&e.errors, 1)
	}
}

// SetHealth sets the health status of a component
func (m *Metrics) SetHealth(component string, healthy bool) {
	if m == nil {
		return
	}
	h := getOrCreate(m, m.health, component, func() *int64 { return new(int64) })
	var v int64
	if healthy {
		v = 1
	}
	atomic.StoreInt64(h, v)
}

// GetCounters returns all counters
func (m *Metrics) GetCounters() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int64, len(m.counters))
	for name, c := range m.counters {
		out[name] = atomic.LoadInt64(c)
	}
	return out
}

// GetTimers returns all timers
func (m *Metrics) GetTimers() map[string]TimerMetric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]TimerMetric, len(m.timers))
	for name, t := range m.timers {
		count := atomic.LoadInt64(&t.count)
		total := atomic.LoadInt64(&t.total)
		var avg float64
		if count > 0 {
			avg = float64(total) / float64(count)
		}
		out[name] = TimerMetric{
			Count:         count,
			TotalTimeMs:   total,
			AverageTimeMs: avg,
			MinTimeMs:     atomic.LoadInt64(&t.min),
			MaxTimeMs:     atomic.LoadInt64(&t.max),
		}
	}
	return out
}

// GetErrorRates returns all error rates
func (m *Metrics) GetErrorRates() map[string]ErrorRateMetric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]ErrorRateMetric, len(m.errorRates))
	for name, e := range m.errorRates {
		total := atomic.LoadInt64(&e.total)
		errs := atomic.LoadInt64(&e.errors)
		var rate float64
		if total > 0 {
			rate = float64(errs) / float64(total) * 100.0
		}
		out[name] = ErrorRateMetric{Total: total, Errors: errs, ErrorRate: rate}
	}
	return out
}

// GetHealthChecks returns the last reported health of every component
func (m *Metrics) GetHealthChecks() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]bool, len(m.health))
	for name, h := range m.health {
		out[name] = atomic.LoadInt64(h) > 0
	}
	return out
}

// GetAllMetrics returns all metrics in a structured format
func (m *Metrics) GetAllMetrics() map[string]interface{} {
	return map[string]interface{}{
		"uptime_seconds": int64(time.Since(m.startTime).Seconds()),
		"counters":       m.GetCounters(),
		"timers":         m.GetTimers(),
		"error_rates":    m.GetErrorRates(),
		"health_checks":  m.GetHealthChecks(),
	}
}
