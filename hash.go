package pullweights

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestBytes returns the SHA-256 digest of data as 64 lowercase hex
// characters. The registry addresses file content by exactly this digest, so
// any mutation of the bytes invalidates it.
func DigestBytes(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}
