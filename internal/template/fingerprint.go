package template

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint returns the hex digest of a 128-bit content hash of a
// normalized signature. It is the sole duplicate-detection key. This is
// a dedup fingerprint, not a security hash: determinism and a low
// accidental-collision rate are what matter.
func Fingerprint(normalized string) string {
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
