package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Fingerprint computes the deduplication key: the md5 hex digest of the
// trimmed qualifications text. Empty qualifications yield an empty
// fingerprint, which the gateway treats as "no dedup possible". md5 is fine
// here: the hash guards against accidental collisions between postings, not
// against an adversary, and the 32-char digest matches the stored column.
func Fingerprint(qualifications string) string {
	trimmed := strings.TrimSpace(qualifications)
	if trimmed == "" {
		return ""
	}

	sum := md5.Sum([]byte(trimmed))
	return hex.EncodeToString(sum[:])
}
