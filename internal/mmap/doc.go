// Package mmap provides read-only memory-mapped file access.
//
// LocalStore maps files so that checksum parts can be read straight from the
// page cache without copying them through a read buffer.
//
//	m, err := mmap.Open("segment.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	sum := crcgo.Checksum(m.Bytes())
//
// Unix uses mmap(2) and madvise(2); Windows uses CreateFileMapping and
// MapViewOfFile, where Advise is a no-op.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but the slice
// returned by Bytes must not be used after Close returns.
package mmap
