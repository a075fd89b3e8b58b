// Package service provides technical services for the evidence registry.
//
// ContentHasher fingerprints evidence bytes with SHA-256, the digest recorded at
// registration and compared against the custody chain during integrity checks.
package service

import (
	"context"
	"io"
)

// Digest is the fingerprint of a piece of evidence.
type Digest struct {
	// Hash is the lowercase hex-encoded SHA-256 of the content.
	Hash string
	// Size is the number of bytes read.
	Size int64
}

// ContentHasher computes SHA-256 digests of evidence content.
type ContentHasher interface {
	// HashReader reads r to EOF. Cancelling ctx stops the read between chunks.
	HashReader(ctx context.Context, r io.Reader) (Digest, error)

	// HashFile opens and hashes the file at path.
	HashFile(ctx context.Context, path string) (Digest, error)
}
