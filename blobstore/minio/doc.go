// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible storage systems like Ceph,
// SeaweedFS and Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "backups/")
//	summer, err := crcgo.NewSummer(store)
//	res, err := summer.SumBlob(ctx, "db.tar")
//
// Dial builds the client from environment credentials:
//
//	store, err := minioblob.Dial("s3.example.com:9000", "my-bucket", "", true)
//
// Uploads made through Put carry a CRC-32 checksum that the server verifies.
package minio
