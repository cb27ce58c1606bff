// Package fs provides the file system abstraction behind local blob writes,
// with a fault-injecting implementation for tests.
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("data", fs.Fault{FailAfterBytes: 1024}) // fail after 1KB
//
// Operations take no context.Context. Local file system calls are not
// interruptible at the syscall level; remote stores use blobstore.Blob,
// which has context support.
package fs
