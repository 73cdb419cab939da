package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStoreRoundTrip(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("%PDF-1.7 content"), "report.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "_report.pdf"))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 content"), data)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFilesystemStoreKeysAreUnique(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	a, err := store.Put(ctx, []byte("first"), "same.pdf")
	require.NoError(t, err)
	b, err := store.Put(ctx, []byte("second"), "same.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "uploads sharing a name must not collide")

	dataA, err := store.Get(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), dataA)
}

func TestFilesystemStoreDeleteIsIdempotent(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), nil)
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "nonexistent_key"))
}

func TestFilesystemStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewFilesystemStore(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilesystemStoreRejectsEmptyDir(t *testing.T) {
	_, err := NewFilesystemStore("", nil)
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/file.pdf", "file.pdf"},
		{"", "upload"},
		{".", "upload"},
		{"..", "upload"},
		{"we\x00ird.pdf", "we_ird.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), "input %q", tt.input)
	}
}

func TestGetConfinesKeysToStoreDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, nil)
	require.NoError(t, err)

	// A key trying to escape the directory resolves to its base name only.
	outside := filepath.Join(dir, "..", "secret")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	_, err = store.Get(context.Background(), "../secret")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
