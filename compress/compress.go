package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies a compression format.
type Kind uint8

const (
	// KindNone is uncompressed data.
	KindNone Kind = iota
	// KindGzip is a gzip stream (RFC 1952).
	KindGzip
	// KindZstd is a Zstandard frame.
	KindZstd
	// KindLZ4 is an LZ4 frame.
	KindLZ4
)

// ErrUnknownKind is returned for a Kind outside the supported set.
var ErrUnknownKind = errors.New("compress: unknown kind")

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// magicLen is the number of header bytes Detect needs.
const magicLen = 4

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGzip:
		return "gzip"
	case KindZstd:
		return "zstd"
	case KindLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind returns the Kind named s, as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindNone; k <= KindLZ4; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Detect returns the Kind whose magic number header starts with.
// Headers that match nothing are KindNone.
func Detect(header []byte) Kind {
	switch {
	case bytes.HasPrefix(header, magicZstd):
		return KindZstd
	case bytes.HasPrefix(header, magicLZ4):
		return KindLZ4
	case bytes.HasPrefix(header, magicGzip):
		return KindGzip
	default:
		return KindNone
	}
}

// DetectReader peeks at the start of r and returns the detected Kind along
// with a reader that still yields every byte of r.
func DetectReader(r io.Reader) (Kind, io.Reader, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return KindNone, nil, err
	}
	return Detect(header), br, nil
}

// NewReader returns a reader that decodes r according to kind.
// Closing it releases decoder resources but does not close r.
func NewReader(r io.Reader, kind Kind) (io.ReadCloser, error) {
	switch kind {
	case KindNone:
		return io.NopCloser(r), nil
	case KindGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case KindZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case KindLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, ErrUnknownKind
	}
}

// NewAutoReader detects the format of r and returns a decoding reader
// together with the detected Kind.
func NewAutoReader(r io.Reader) (io.ReadCloser, Kind, error) {
	kind, br, err := DetectReader(r)
	if err != nil {
		return nil, KindNone, err
	}
	rc, err := NewReader(br, kind)
	if err != nil {
		return nil, kind, err
	}
	return rc, kind, nil
}
