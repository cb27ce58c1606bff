package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/crcgo/blobstore"
	minioblob "github.com/hupe1980/crcgo/blobstore/minio"
	"github.com/hupe1980/crcgo/blobstore/s3"
)

// openStore resolves a --store value.
func openStore(ctx context.Context, location string) (blobstore.BlobStore, error) {
	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		if location == "" {
			return defaultStore(), nil
		}
		fi, err := os.Stat(location)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("store %q is not a directory", location)
		}
		return blobstore.NewLocalStore(location), nil
	}

	switch scheme {
	case "s3":
		bucket, prefix := splitBucket(rest)
		if bucket == "" {
			return nil, fmt.Errorf("store %q: missing bucket", location)
		}
		store, err := s3.New(ctx, bucket, s3.WithPrefix(prefix))
		if err != nil {
			return nil, err
		}
		return store, nil

	case "minio", "minio+http":
		endpoint, path, _ := strings.Cut(rest, "/")
		bucket, prefix := splitBucket(path)
		if endpoint == "" || bucket == "" {
			return nil, fmt.Errorf("store %q: want %s://endpoint/bucket[/prefix]", location, scheme)
		}
		store, err := minioblob.Dial(endpoint, bucket, prefix, scheme == "minio")
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("store %q: unsupported scheme %q", location, scheme)
	}
}

func splitBucket(s string) (bucket, prefix string) {
	bucket, prefix, _ = strings.Cut(s, "/")
	return bucket, prefix
}
