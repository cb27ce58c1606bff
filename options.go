package crcgo

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/crcgo/internal/pool"
)

const (
	// DefaultPartSize is the blob size above which SumBlob splits the blob
	// into parts that are hashed concurrently.
	DefaultPartSize int64 = 8 << 20

	// defaultBufferSize is the chunk size for streamed and ranged reads.
	defaultBufferSize = pool.DefaultBufferSize
)

type options struct {
	concurrency      int
	partSize         int64
	ioLimit          int64
	memoryLimit      int64
	decompress       bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Summer behavior.
type Option func(*options)

// WithConcurrency bounds the number of blobs (SumAll) and parts (SumBlob)
// hashed at the same time.
//
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithPartSize configures the split threshold for large blobs.
//
// Blobs up to size bytes are read sequentially. Larger blobs are cut into
// size-byte parts whose checksums are computed in parallel and merged with
// Combine, so the result is identical to a sequential read.
//
// A size <= 0 makes NewSummer fail with ErrInvalidPartSize.
func WithPartSize(size int64) Option {
	return func(o *options) {
		o.partSize = size
	}
}

// WithIOLimit caps read throughput across all jobs of a Summer in bytes per
// second. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithMemoryLimit caps the read buffers held at the same time. Zero means
// unlimited. Memory-mapped blobs are hashed in place and are not counted.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithDecompression enables transparent decoding of gzip, zstd and lz4
// blobs. The checksum is then computed over the decoded bytes.
//
// Compression is sniffed from the first bytes of each blob; blobs without
// a known magic are hashed unchanged.
func WithDecompression(enabled bool) Option {
	return func(o *options) {
		o.decompress = enabled
	}
}

// WithMetrics configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &crcgo.BasicMetricsCollector{}
//	s, _ := crcgo.NewSummer(store, crcgo.WithMetrics(metrics))
//	// ... use s ...
//	stats := metrics.Stats()
//	fmt.Printf("Sums: %d, Avg latency: %dns\n", stats.SumCount, stats.SumAvgNanos)
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := crcgo.NewJSONLogger(slog.LevelInfo)
//	s, _ := crcgo.NewSummer(store, crcgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		partSize:         DefaultPartSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
