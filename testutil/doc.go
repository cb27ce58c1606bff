// Package testutil provides testing utilities for crcgo.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Bytes(1 << 20)
//	for _, chunk := range rng.Split(data, 300) {
//	    h.Update(chunk)
//	}
//
// # Fixtures
//
//	dir := testutil.WriteFiles(t, map[string][]byte{"a.txt": []byte("a")})
//	gz := testutil.Gzip(t, data)
package testutil
