package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/custody/internal/errors"
)

// sha256("test")
const testDigest = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device error")
}

func TestContentHasher_HashReader(t *testing.T) {
	hasher := NewContentHasher()

	t.Run("KnownDigest", func(t *testing.T) {
		digest, err := hasher.HashReader(context.Background(), strings.NewReader("test"))

		require.NoError(t, err)
		assert.Equal(t, testDigest, digest.Hash)
		assert.Equal(t, int64(4), digest.Size)
	})

	t.Run("Empty", func(t *testing.T) {
		digest, err := hasher.HashReader(context.Background(), strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest.Hash)
		assert.Zero(t, digest.Size)
	})

	t.Run("SpansChunks", func(t *testing.T) {
		small := &sha256Hasher{chunkSize: 3}
		whole, err := hasher.HashReader(context.Background(), strings.NewReader(strings.Repeat("abcdefg", 10)))
		require.NoError(t, err)

		chunked, err := small.HashReader(context.Background(), strings.NewReader(strings.Repeat("abcdefg", 10)))

		require.NoError(t, err)
		assert.Equal(t, whole, chunked)
	})

	t.Run("ReadError", func(t *testing.T) {
		_, err := hasher.HashReader(context.Background(), failingReader{})

		assert.ErrorContains(t, err, "device error")
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := hasher.HashReader(ctx, strings.NewReader("test"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestContentHasher_HashFile(t *testing.T) {
	hasher := NewContentHasher()

	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "evidence.bin")
		require.NoError(t, os.WriteFile(path, []byte("test"), 0o600))

		digest, err := hasher.HashFile(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, testDigest, digest.Hash)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := hasher.HashFile(context.Background(), filepath.Join(t.TempDir(), "missing.bin"))

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
