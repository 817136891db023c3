package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks model call metrics
type Metrics struct {
	GenerationCalls  int64 `json:"generation_calls"`
	GenerationErrors int64 `json:"generation_errors"`
	AnalysisCalls    int64 `json:"analysis_calls"`
	AnalysisErrors   int64 `json:"analysis_errors"`
	modelLatency     int64 // total nanoseconds across both call kinds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		GenerationCalls:  atomic.LoadInt64(&globalMetrics.GenerationCalls),
		GenerationErrors: atomic.LoadInt64(&globalMetrics.GenerationErrors),
		AnalysisCalls:    atomic.LoadInt64(&globalMetrics.AnalysisCalls),
		AnalysisErrors:   atomic.LoadInt64(&globalMetrics.AnalysisErrors),
		modelLatency:     atomic.LoadInt64(&globalMetrics.modelLatency),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.GenerationCalls, 0)
	atomic.StoreInt64(&globalMetrics.GenerationErrors, 0)
	atomic.StoreInt64(&globalMetrics.AnalysisCalls, 0)
	atomic.StoreInt64(&globalMetrics.AnalysisErrors, 0)
	atomic.StoreInt64(&globalMetrics.modelLatency, 0)
}

func recordGeneration(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.GenerationCalls, 1)
	atomic.AddInt64(&globalMetrics.modelLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.GenerationErrors, 1)
	}
}

func recordAnalysis(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.AnalysisCalls, 1)
	atomic.AddInt64(&globalMetrics.modelLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.AnalysisErrors, 1)
	}
}

// AverageModelLatency returns the average latency in milliseconds
func (m Metrics) AverageModelLatency() float64 {
	calls := m.GenerationCalls + m.AnalysisCalls
	if calls == 0 {
		return 0
	}
	return float64(m.modelLatency) / float64(calls) / 1e6
}

// ErrorRate returns the error rate as a percentage
func (m Metrics) ErrorRate() float64 {
	calls := m.GenerationCalls + m.AnalysisCalls
	if calls == 0 {
		return 0
	}
	return float64(m.GenerationErrors+m.AnalysisErrors) / float64(calls) * 100
}

// MetricsSnapshot is the metrics view reported by the health endpoint.
type MetricsSnapshot struct {
	Metrics
	AvgModelLatencyMs float64 `json:"avg_model_latency_ms"`
	ErrorRate         float64 `json:"error_rate"`
}

// Snapshot adds the derived latency and error rate to m.
func (m Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Metrics:           m,
		AvgModelLatencyMs: m.AverageModelLatency(),
		ErrorRate:         m.ErrorRate(),
	}
}
