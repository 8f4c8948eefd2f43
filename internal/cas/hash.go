// Package cas implements the content-addressable store: Blake3-hashed
// blob storage under a sharded directory layout, a persisted index with
// touch-on-access timestamps, and caller-driven garbage collection.
package cas

import (
	"encoding/hex"

	"github.com/lukechampine/blake3"

	"github.com/arko-martian/peacore/pkgerr"
)

// HashSize is the length in bytes of a ContentHash.
const HashSize = 32

// ContentHash is a 32-byte Blake3 digest identifying a blob by content.
type ContentHash [HashSize]byte

// Hash computes the ContentHash of b.
func Hash(b []byte) ContentHash {
	sum := blake3.Sum256(b)
	return ContentHash(sum)
}

// String renders the hash as lowercase hex.
func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a 64-character lowercase hex string into a ContentHash.
func ParseHash(s string) (ContentHash, error) {
	var h ContentHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, pkgerr.IntegrityErr("invalid content hash: " + s)
	}
	if len(b) != HashSize {
		return h, pkgerr.IntegrityErr("invalid content hash length: " + s)
	}
	copy(h[:], b)
	return h, nil
}

// ShardPath returns the two-level sharded relative path for h, e.g.
// "ab/cd/abcd...".
func (h ContentHash) ShardPath() (string, string, string) {
	hex := h.String()
	return hex[0:2], hex[2:4], hex
}
