// Package compress decodes compressed inputs so that checksums can be taken
// over the original bytes.
//
// Supported formats are detected from their magic numbers:
//
//	gzip        1f 8b
//	zstd        28 b5 2f fd
//	lz4 frame   04 22 4d 18
//
// gzip and zstd use github.com/klauspost/compress; lz4 uses
// github.com/pierrec/lz4/v4.
package compress
