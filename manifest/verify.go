package manifest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/crcgo"
)

// Mismatch reports an entry whose blob no longer matches.
type Mismatch struct {
	Entry

	// Actual is the recomputed checksum. Zero when Err is set.
	Actual uint32
	// ActualSize is the recomputed size.
	ActualSize int64
	// Err is set when the blob could not be read, for example when it no
	// longer exists.
	Err error
}

func (m Mismatch) Error() string {
	if m.Err != nil {
		return m.Err.Error()
	}
	if m.Actual != m.Sum {
		return fmt.Sprintf("%s: %v", m.Name, &crcgo.ChecksumMismatchError{Expected: m.Sum, Actual: m.Actual})
	}
	return fmt.Sprintf("%s: size mismatch: expected %d, got %d", m.Name, m.Size, m.ActualSize)
}

// Verify recomputes every entry of m with s and returns the entries that
// differ, in manifest order. Unreadable blobs are reported as mismatches
// with Err set. The returned error is non-nil only when ctx ends.
func Verify(ctx context.Context, s *crcgo.Summer, m *Manifest) ([]Mismatch, error) {
	start := time.Now()
	found := make([]*Mismatch, len(m.Entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency())
	for i, e := range m.Entries {
		g.Go(func() error {
			res, err := s.SumBlob(gctx, e.Name)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					return ctxErr
				}
				found[i] = &Mismatch{Entry: e, Err: err}
				return nil
			}
			if res.Sum != e.Sum || (e.Size >= 0 && res.Size != e.Size) {
				found[i] = &Mismatch{Entry: e, Actual: res.Sum, ActualSize: res.Size}
			}
			return nil
		})
	}
	err := g.Wait()

	var mismatches []Mismatch
	for _, mm := range found {
		if mm != nil {
			mismatches = append(mismatches, *mm)
		}
	}

	s.Metrics().RecordVerify(len(m.Entries), len(mismatches), time.Since(start))
	s.Logger().LogVerify(ctx, len(m.Entries), len(mismatches), err)

	if err != nil {
		return nil, err
	}
	return mismatches, nil
}
