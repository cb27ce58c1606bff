package crcgo

import (
	"errors"
	"fmt"
)

var (
	// ErrFinalized is the panic value raised when a finalized Hasher is used.
	// It signals a programming error, not a condition callers should recover.
	ErrFinalized = errors.New("crcgo: hasher already finalized")

	// ErrInvalidChecksum is returned when a checksum string cannot be parsed.
	ErrInvalidChecksum = errors.New("invalid checksum")

	// ErrInvalidPartSize is returned when a non-positive part size is configured.
	ErrInvalidPartSize = errors.New("part size must be positive")
)

// ParseError indicates a malformed checksum string.
//
// The original underlying error can be accessed via errors.Unwrap.
type ParseError struct {
	Input string
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse checksum %q: %v", e.Input, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// ChecksumMismatchError is returned when a computed checksum differs from the
// expected one.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %s, got %s", Format(e.Expected), Format(e.Actual))
}

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}

// BlobError annotates a failure with the blob it happened on.
//
// The original underlying error can be accessed via errors.Unwrap.
type BlobError struct {
	Name  string
	cause error
}

func (e *BlobError) Error() string {
	return fmt.Sprintf("blob %q: %v", e.Name, e.cause)
}

func (e *BlobError) Unwrap() error { return e.cause }
