// Package manifest reads, writes and verifies checksum manifests.
//
// The text format has one line per blob, the lowercase hex checksum followed
// by two spaces and the blob name:
//
//	cbf43926  data/123456789.txt
//	0d4a1185  hello.txt
//
// Blank lines and lines starting with '#' are ignored when decoding. The
// JSON format carries the same entries plus the blob size:
//
//	{"entries":[{"name":"hello.txt","crc32":"0d4a1185","size":11}]}
package manifest
