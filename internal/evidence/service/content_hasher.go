package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	apperrors "github.com/allisson/custody/internal/errors"
)

const hashChunkSize = 64 * 1024

type sha256Hasher struct {
	chunkSize int
}

// HashReader streams r through SHA-256 in fixed-size chunks.
func (h *sha256Hasher) HashReader(ctx context.Context, r io.Reader) (Digest, error) {
	digest := sha256.New()
	buf := make([]byte, h.chunkSize)
	var size int64

	for {
		if err := ctx.Err(); err != nil {
			return Digest{}, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			_, _ = digest.Write(buf[:n])
			size += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Digest{}, apperrors.Wrap(err, "failed to read evidence content")
		}
	}

	return Digest{Hash: hex.EncodeToString(digest.Sum(nil)), Size: size}, nil
}

// HashFile hashes the file at path. A missing file is reported as ErrNotFound.
func (h *sha256Hasher) HashFile(ctx context.Context, path string) (Digest, error) {
	f, err := os.Open(path) // #nosec G304 -- operators hash files they name on the command line
	if err != nil {
		if os.IsNotExist(err) {
			return Digest{}, apperrors.Wrap(apperrors.ErrNotFound, "evidence file "+path)
		}
		return Digest{}, apperrors.Wrap(err, "failed to open evidence file")
	}
	defer func() {
		_ = f.Close()
	}()

	return h.HashReader(ctx, f)
}

// NewContentHasher creates a SHA-256 ContentHasher.
func NewContentHasher() ContentHasher {
	return &sha256Hasher{chunkSize: hashChunkSize}
}
