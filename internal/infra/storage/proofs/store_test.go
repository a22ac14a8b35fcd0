package proofs

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveAndOpen(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, 42, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^42_[0-9a-f-]{36}\.png$`), key)

	data, contentType, err := store.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestFileStore_UniqueKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), 1, "application/pdf", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), 1, "application/pdf", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFileStore_Errors(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, 1, "text/plain", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, _, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = store.Open(ctx, "1_00000000-0000-0000-0000-000000000000.png")
	assert.ErrorIs(t, err, ErrProofNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, 7, "application/pdf", []byte("pdf"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))
	_, _, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrProofNotFound)

	assert.NoError(t, store.Delete(ctx, key))
	assert.ErrorIs(t, store.Delete(ctx, "../config.toml"), ErrInvalidKey)
}
