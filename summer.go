package crcgo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/crcgo/blobstore"
	"github.com/hupe1980/crcgo/compress"
	"github.com/hupe1980/crcgo/internal/pool"
	"github.com/hupe1980/crcgo/resource"
)

// Result is the checksum of one blob.
type Result struct {
	Name string
	Sum  uint32

	// Size is the number of bytes hashed. With decompression enabled it is
	// the decoded size.
	Size int64

	// Compression is the detected encoding, compress.KindNone unless
	// decompression is enabled.
	Compression compress.Kind
}

// Summer computes checksums of blobs held in a BlobStore.
//
// A Summer is safe for concurrent use. Every job uses its own Hasher; the
// only shared state is the resource controller that bounds workers, buffer
// memory and read throughput.
type Summer struct {
	store blobstore.BlobStore
	rc    *resource.Controller
	bufs  *pool.Buffers
	opts  options
}

// NewSummer creates a Summer reading from store.
//
// store may be nil when only SumReader is used.
func NewSummer(store blobstore.BlobStore, optFns ...Option) (*Summer, error) {
	o := applyOptions(optFns)
	if o.partSize <= 0 {
		return nil, ErrInvalidPartSize
	}
	if o.ioLimit < 0 || o.memoryLimit < 0 {
		return nil, errors.New("crcgo: limits must not be negative")
	}

	return &Summer{
		store: store,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   o.memoryLimit,
			MaxWorkers:         int64(o.concurrency),
			IOLimitBytesPerSec: o.ioLimit,
		}),
		bufs: pool.NewBuffers(defaultBufferSize),
		opts: o,
	}, nil
}

// Concurrency returns the effective concurrency bound.
func (s *Summer) Concurrency() int { return s.opts.concurrency }

// PartSize returns the effective part size.
func (s *Summer) PartSize() int64 { return s.opts.partSize }

// Logger returns the configured logger.
func (s *Summer) Logger() *Logger { return s.opts.logger }

// Metrics returns the configured metrics collector.
func (s *Summer) Metrics() MetricsCollector { return s.opts.metricsCollector }

// Store returns the underlying blob store.
func (s *Summer) Store() blobstore.BlobStore { return s.store }

// SumReader consumes r to EOF and returns its checksum and length.
// The context is checked between chunks.
func (s *Summer) SumReader(ctx context.Context, r io.Reader) (uint32, int64, error) {
	start := time.Now()
	sum, n, err := s.sumStream(ctx, r)
	s.opts.metricsCollector.RecordSum(n, time.Since(start), err)
	return sum, n, err
}

func (s *Summer) sumStream(ctx context.Context, r io.Reader) (uint32, int64, error) {
	if err := s.rc.AcquireMemory(ctx, defaultBufferSize); err != nil {
		return 0, 0, err
	}
	defer s.rc.ReleaseMemory(defaultBufferSize)

	bp := s.bufs.Get()
	defer s.bufs.Put(bp)
	buf := *bp

	h := New()
	lr := resource.NewRateLimitedReader(ctx, r, s.rc)
	for {
		n, err := lr.Read(buf)
		h.Update(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, h.Amount(), err
		}
	}
	return h.Finalize(), h.Amount(), nil
}

// SumBlob computes the checksum of the named blob.
//
// Errors are returned as *BlobError carrying the blob name.
func (s *Summer) SumBlob(ctx context.Context, name string) (Result, error) {
	start := time.Now()
	res, err := s.sumBlob(ctx, name)
	elapsed := time.Since(start)
	if err != nil {
		err = &BlobError{Name: name, cause: err}
	}
	s.opts.metricsCollector.RecordSum(res.Size, elapsed, err)
	s.opts.logger.LogSum(ctx, name, res.Size, res.Sum, elapsed, err)
	return res, err
}

func (s *Summer) sumBlob(ctx context.Context, name string) (Result, error) {
	if s.store == nil {
		return Result{}, errors.New("crcgo: summer has no blob store")
	}
	blob, err := s.store.Open(ctx, name)
	if err != nil {
		return Result{}, err
	}
	defer blob.Close()

	res := Result{Name: name}
	size := blob.Size()

	switch {
	case s.opts.decompress:
		if err := s.rc.AcquireWorker(ctx); err != nil {
			return res, err
		}
		defer s.rc.ReleaseWorker()

		rc, err := blob.ReadRange(ctx, 0, size)
		if err != nil {
			return res, err
		}
		defer rc.Close()

		dec, kind, err := compress.NewAutoReader(rc)
		if err != nil {
			return res, err
		}
		defer dec.Close()

		res.Compression = kind
		res.Sum, res.Size, err = s.sumStream(ctx, dec)
		if err != nil {
			return res, fmt.Errorf("decode %s: %w", kind, err)
		}
		return res, nil

	case size <= s.opts.partSize:
		if err := s.rc.AcquireWorker(ctx); err != nil {
			return res, err
		}
		defer s.rc.ReleaseWorker()

		res.Sum, err = s.sumRange(ctx, blob, 0, size)
		res.Size = size
		return res, err

	default:
		res.Sum, err = s.sumParts(ctx, blob, size)
		res.Size = size
		return res, err
	}
}

// sumParts splits the blob into partSize pieces, hashes them concurrently
// and merges the part checksums in order.
func (s *Summer) sumParts(ctx context.Context, blob blobstore.Blob, size int64) (uint32, error) {
	partSize := s.opts.partSize
	n := int((size + partSize - 1) / partSize)
	sums := make([]uint32, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)
	for i := range n {
		off := int64(i) * partSize
		length := min(partSize, size-off)
		g.Go(func() error {
			if err := s.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer s.rc.ReleaseWorker()

			sum, err := s.sumRange(gctx, blob, off, length)
			if err != nil {
				return fmt.Errorf("part %d at offset %d: %w", i, off, err)
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	sum := sums[0]
	for i := 1; i < n; i++ {
		off := int64(i) * partSize
		sum = Combine(sum, sums[i], min(partSize, size-off))
	}
	return sum, nil
}

// sumRange hashes blob[off:off+length]. Mappable blobs are hashed in place.
func (s *Summer) sumRange(ctx context.Context, blob blobstore.Blob, off, length int64) (uint32, error) {
	h := New()

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return 0, err
		}
		data = data[off : off+length]
		for len(data) > 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			chunk := data[:min(len(data), defaultBufferSize)]
			if err := s.rc.AcquireIO(ctx, len(chunk)); err != nil {
				return 0, err
			}
			h.Update(chunk)
			data = data[len(chunk):]
		}
		return h.Finalize(), nil
	}

	bufLen := min(length, defaultBufferSize)
	if err := s.rc.AcquireMemory(ctx, bufLen); err != nil {
		return 0, err
	}
	defer s.rc.ReleaseMemory(bufLen)

	bp := s.bufs.Get()
	defer s.bufs.Put(bp)
	buf := (*bp)[:bufLen]

	for done := int64(0); done < length; {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		chunk := buf[:min(length-done, bufLen)]
		if err := s.rc.AcquireIO(ctx, len(chunk)); err != nil {
			return 0, err
		}
		n, err := blob.ReadAt(ctx, chunk, off+done)
		if n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		h.Update(chunk[:n])
		done += int64(n)
		if err != nil && !(errors.Is(err, io.EOF) && n == len(chunk)) {
			if errors.Is(err, io.EOF) {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
	}
	return h.Finalize(), nil
}

// SumAll computes checksums of all named blobs, at most Concurrency at a
// time. Results are returned in input order. The first failure cancels the
// remaining jobs and is returned.
//
// The failure count reported to metrics and logs covers blobs that failed on
// their own. Jobs stopped by the resulting cancellation are not counted.
func (s *Summer) SumAll(ctx context.Context, names []string) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(names))
	var failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)
	for i, name := range names {
		g.Go(func() error {
			res, err := s.SumBlob(gctx, name)
			if err != nil {
				if !isCancellation(err) {
					failures.Add(1)
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)

	failed := int(failures.Load())
	if err != nil && failed == 0 {
		// Canceled by the caller before any blob failed.
		failed = 1
	}
	var total int64
	for _, r := range results {
		total += r.Size
	}
	s.opts.metricsCollector.RecordBatch(len(names), failed, elapsed)
	s.opts.logger.LogBatch(ctx, len(names), failed, total, elapsed)

	if err != nil {
		return nil, err
	}
	return results, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// SumPrefix lists the store under prefix and checksums every blob found.
func (s *Summer) SumPrefix(ctx context.Context, prefix string) ([]Result, error) {
	if s.store == nil {
		return nil, errors.New("crcgo: summer has no blob store")
	}
	names, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	return s.SumAll(ctx, names)
}
