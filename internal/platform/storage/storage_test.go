// Copyright (c) 2026 MangroveNet. All rights reserved.

package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
	"github.com/mangrovenet/mangrovenet/internal/platform/storage"
)

/*
TestTimestampName verifies the local driver's naming scheme: a millisecond
prefix followed by the sanitized original name.
*/
func TestTimestampName(t *testing.T) {
	name := storage.TimestampName("field survey.jpg")

	parts := strings.SplitN(name, "-", 2)
	require.Len(t, parts, 2)
	assert.Regexp(t, `^\d{13,}$`, parts[0])
	assert.Equal(t, "field survey.jpg", parts[1])

	// Path components are stripped so an upload cannot escape the directory.
	assert.Equal(t, "escape.png", strings.SplitN(storage.TimestampName("../../escape.png"), "-", 2)[1])

	// A blank original name still yields something storable.
	assert.Contains(t, storage.TimestampName("  "), "-upload")
}

/*
TestNumberedName verifies the object-storage collision suffix placement.
*/
func TestNumberedName(t *testing.T) {
	assert.Equal(t, "documents/report (2).pdf", storage.NumberedName("documents/report.pdf", 2))
	assert.Equal(t, "documents/archive (1)", storage.NumberedName("documents/archive", 1))
	// path.Ext only sees the final extension.
	assert.Equal(t, "a.tar (3).gz", storage.NumberedName("a.tar.gz", 3))
}

/*
TestLocalStore_Save verifies the disk round-trip and the public path the
driver reports back for persistence.
*/
func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	content := []byte("binary payload")
	publicPath, err := store.Save(context.Background(), "1700000000000-survey.pdf", strings.NewReader(string(content)), int64(len(content)))
	require.NoError(t, err)

	assert.Equal(t, constants.UploadPublicPrefix+"1700000000000-survey.pdf", publicPath)

	written, err := os.ReadFile(filepath.Join(dir, "1700000000000-survey.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

/*
TestNewLocalStore_CreatesDirectory verifies that a missing upload directory
is created rather than reported as an error.
*/
func TestNewLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
