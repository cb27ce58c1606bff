// Package checksum provides io.Reader and io.Writer wrappers that compute a
// running CRC-32 checksum of the data passing through them.
//
//	cr := checksum.NewReader(f)
//	if _, err := io.Copy(dst, cr); err != nil { ... }
//	if err := cr.Verify(expected); err != nil { ... }
//
// Note: CRC-32 is NOT cryptographically secure. Use it to detect accidental
// corruption, not tampering.
package checksum
