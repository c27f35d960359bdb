// Copyright (c) 2026 MangroveNet. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
)

// # Object Storage Driver (Minio / S3-compatible)

// MinioStore writes uploads to an S3-compatible bucket under the
// documents/ key prefix.
//
// # Collision Handling
//
// Unlike the local driver (whose timestamp prefix already uniquifies names),
// object keys preserve the human-readable name and are deduplicated with a
// " (n)" suffix: "report.pdf", "report (1).pdf", "report (2).pdf", ...
type MinioStore struct {
	client *minio.Client
	bucket string
}

// objectStatter is the subset of the Minio client used for collision probing.
// Split out so the renaming logic is testable without a live bucket.
type objectStatter interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// NewMinioStore connects to the object storage endpoint and verifies the
// bucket exists, creating it when missing.
func NewMinioStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: failed to create bucket %s: %w", bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

// Save uploads the binary under a collision-free documents/ key and returns
// that key as the stored path.
func (store *MinioStore) Save(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	key, err := availableKey(ctx, store.client, store.bucket, constants.ObjectStoragePrefix+path.Base(filename))
	if err != nil {
		return "", err
	}

	if _, err := store.client.PutObject(ctx, store.bucket, key, reader, size, minio.PutObjectOptions{}); err != nil {
		return "", fmt.Errorf("storage: failed to upload %s: %w", key, err)
	}

	return key, nil
}

// availableKey probes the bucket for the first key that is not taken,
// appending " (1)", " (2)", ... before the extension.
func availableKey(ctx context.Context, statter objectStatter, bucket, key string) (string, error) {
	candidate := key
	for attempt := 1; ; attempt++ {
		_, err := statter.StatObject(ctx, bucket, candidate, minio.StatObjectOptions{})
		if err != nil {
			response := minio.ToErrorResponse(err)
			if response.Code == "NoSuchKey" {
				return candidate, nil
			}
			return "", fmt.Errorf("storage: failed to probe key %s: %w", candidate, err)
		}
		candidate = NumberedName(key, attempt)
	}
}

// NumberedName inserts a " (n)" suffix before the file extension:
// NumberedName("documents/report.pdf", 2) == "documents/report (2).pdf".
func NumberedName(key string, n int) string {
	extension := path.Ext(key)
	stem := strings.TrimSuffix(key, extension)
	return fmt.Sprintf("%s (%d)%s", stem, n, extension)
}
