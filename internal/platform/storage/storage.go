// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package storage provides durable binary file storage for uploaded media.

Two drivers implement the same [Store] contract:

  - Local: files on disk under a directory served at the public /uploads/ prefix.
  - Minio: an S3-compatible bucket, keyed under a documents/ prefix.

Stored binaries are referenced everywhere else in the system only by the
path string a driver returns; the relational store never holds file bytes.
Row deletion does NOT remove stored binaries — orphaned files are an
accepted trade-off, tracked as a cleanup backlog item.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
)

// Store is the contract for writing uploaded binaries to durable storage.
type Store interface {

	/*
		Save writes the binary and returns the public path under which it is
		addressable.

		Parameters:
		  - context: context.Context
		  - filename: string (Desired file name, already uniquified by the caller or driver)
		  - reader: io.Reader (Binary content)
		  - size: int64 (Content length; -1 if unknown)

		Returns:
		  - string: Public path recorded in the relational store
		  - error: Driver I/O failures
	*/
	Save(context context.Context, filename string, reader io.Reader, size int64) (string, error)
}

// # Upload Naming

// TimestampName builds the canonical stored filename for an upload:
// "<unix-ms>-<original-name>". The millisecond prefix keeps repeated uploads
// of the same file distinct and naturally sorts by creation time.
func TimestampName(originalName string) string {
	base := filepath.Base(strings.TrimSpace(originalName))
	if base == "" || base == "." {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}

// # Local Disk Driver

// LocalStore writes uploads to a directory on the local filesystem.
//
// Files are served back by the HTTP layer as static assets under
// [constants.UploadPublicPrefix].
type LocalStore struct {
	dir string
}

// NewLocalStore ensures the upload directory exists and returns the driver.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory the driver writes into.
func (store *LocalStore) Dir() string { return store.dir }

// Save writes the binary to disk and returns its /uploads/ path.
func (store *LocalStore) Save(_ context.Context, filename string, reader io.Reader, _ int64) (string, error) {
	destination := filepath.Join(store.dir, filepath.Base(filename))

	file, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("storage: failed to create %s: %w", destination, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		// Best effort removal of the truncated file.
		_ = os.Remove(destination)
		return "", fmt.Errorf("storage: failed to write %s: %w", destination, err)
	}

	return constants.UploadPublicPrefix + filepath.Base(filename), nil
}
