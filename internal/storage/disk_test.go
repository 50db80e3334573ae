package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "siscav/internal/errors"
)

func TestNewKey(t *testing.T) {
	first := NewKey(".jpg")
	second := NewKey(".jpg")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".jpg"))
	// Keys never carry path structure.
	assert.Equal(t, first, filepath.Base(first))
}

func TestDiskStore_SaveOpenRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := NewKey(".png")
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	require.NoError(t, store.Save(ctx, key, strings.NewReader(string(payload)), int64(len(payload)), "image/png"))

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDiskStore_OpenMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "does-not-exist.jpg")
	assert.ErrorIs(t, err, apperrors.ErrImageNotFound)
}

func TestDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskStore(dir)
	assert.NoError(t, err)
}
