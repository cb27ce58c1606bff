// Package crcgo computes CRC-32 checksums (IEEE 802.3, reflected polynomial
// 0xEDB88320) over byte streams and blob stores.
//
// # Engine
//
// A Hasher is fed with any number of Update calls and closed with Finalize.
// Splitting the input differently never changes the result:
//
//	h := crcgo.New()
//	h.Update([]byte("1234"))
//	h.Update([]byte("56789"))
//	fmt.Println(crcgo.Format(h.Finalize())) // cbf43926
//
// Finalize may be called once. Any later call on the finalized Hasher panics
// with ErrFinalized; call Reset to reuse it. Checksum is the one-shot form.
//
// Independent checksums can be merged without rereading the data:
//
//	whole := crcgo.Combine(crcgo.Checksum(a), crcgo.Checksum(b), int64(len(b)))
//
// NewHash32 adapts the engine to hash.Hash32.
//
// # Blob stores
//
// A Summer checksums blobs from a blobstore.BlobStore (local files,
// memory, S3 or MinIO). Large blobs are split into parts that are hashed
// concurrently and merged with Combine:
//
//	store := blobstore.NewLocalStore("./data")
//	summer, _ := crcgo.NewSummer(store,
//	    crcgo.WithConcurrency(8),
//	    crcgo.WithPartSize(16<<20),
//	    crcgo.WithIOLimit(200<<20),
//	)
//	results, err := summer.SumAll(ctx, []string{"a.bin", "b.bin"})
//
// With WithDecompression(true), gzip, zstd and lz4 blobs are decoded and the
// checksum covers the plain bytes.
//
// # Concurrency
//
// The lookup table is built once at package initialization and never
// modified. Hashers share nothing, so any number of them may run in
// parallel. A single Hasher must not be used from several goroutines
// without synchronization.
package crcgo
