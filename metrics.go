package crcgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    bytesCounter prometheus.Counter
//	    sumHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSum(bytes int64, duration time.Duration, err error) {
//	    p.bytesCounter.Add(float64(bytes))
//	    p.sumHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordSum is called after each blob or stream checksum.
	// bytes is the number of bytes hashed, err is nil if successful.
	RecordSum(bytes int64, duration time.Duration, err error)

	// RecordBatch is called after each SumAll call.
	// count is the number of blobs requested. failed is the number of blobs
	// that failed, excluding jobs stopped by the cancellation after the first
	// failure. It is at least 1 whenever the batch returned an error.
	RecordBatch(count, failed int, duration time.Duration)

	// RecordVerify is called after each manifest verification.
	RecordVerify(entries, mismatches int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSum(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)   {}
func (NoopMetricsCollector) RecordVerify(int, int, time.Duration)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SumCount      atomic.Int64
	SumErrors     atomic.Int64
	SumBytes      atomic.Int64
	SumTotalNanos atomic.Int64
	BatchCount    atomic.Int64
	BatchItems    atomic.Int64
	BatchFailed   atomic.Int64
	VerifyCount   atomic.Int64
	VerifyEntries atomic.Int64
	Mismatches    atomic.Int64
}

// RecordSum implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSum(bytes int64, duration time.Duration, err error) {
	b.SumCount.Add(1)
	b.SumBytes.Add(bytes)
	b.SumTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SumErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// RecordVerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVerify(entries, mismatches int, _ time.Duration) {
	b.VerifyCount.Add(1)
	b.VerifyEntries.Add(int64(entries))
	b.Mismatches.Add(int64(mismatches))
}

// Stats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) Stats() BasicMetricsStats {
	return BasicMetricsStats{
		SumCount:      b.SumCount.Load(),
		SumErrors:     b.SumErrors.Load(),
		SumBytes:      b.SumBytes.Load(),
		SumAvgNanos:   b.getAvgSumNanos(),
		BatchCount:    b.BatchCount.Load(),
		BatchItems:    b.BatchItems.Load(),
		BatchFailed:   b.BatchFailed.Load(),
		VerifyCount:   b.VerifyCount.Load(),
		VerifyEntries: b.VerifyEntries.Load(),
		Mismatches:    b.Mismatches.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSumNanos() int64 {
	count := b.SumCount.Load()
	if count == 0 {
		return 0
	}
	return b.SumTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SumCount      int64
	SumErrors     int64
	SumBytes      int64
	SumAvgNanos   int64
	BatchCount    int64
	BatchItems    int64
	BatchFailed   int64
	VerifyCount   int64
	VerifyEntries int64
	Mismatches    int64
}
