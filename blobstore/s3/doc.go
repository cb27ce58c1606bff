// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("backups/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	summer, err := crcgo.NewSummer(store, crcgo.WithPartSize(16<<20))
//	res, err := summer.SumBlob(ctx, "2026-10-14.tar")
//
// # Features
//
//   - Range reads, so large objects are checksummed as parallel parts
//   - Automatic pagination for listing
//   - Uploads carry an x-amz-checksum-crc32 header computed locally, so S3
//     rejects objects corrupted in transit
//   - Multipart uploads above the configured part size
package s3
