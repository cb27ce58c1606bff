// Package hash implements the table-driven CRC-32 core used by crcgo.
//
// # CRC-32 (IEEE)
//
// The algorithm is CRC-32/ISO-HDLC, the variant used by Ethernet, zlib, gzip
// and PKZIP:
//
//   - Polynomial 0x04C11DB7, processed in reflected (LSB-first) form 0xEDB88320
//   - Initial register 0xFFFFFFFF
//   - Final XOR 0xFFFFFFFF
//   - Check value CRC("123456789") = 0xCBF43926
//
// # Usage
//
// The functions here operate on the raw register. Callers own the
// initial value and the final complement:
//
//	reg := hash.Init
//	reg = hash.Update(reg, chunk1)
//	reg = hash.Update(reg, chunk2)
//	sum := ^reg
//
// # Table
//
// The 256-entry lookup table is computed once at package init and is never
// written afterwards, so it is safe to share between goroutines without
// locking.
package hash
