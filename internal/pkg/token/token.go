// Package token generates confirmation tokens for the double opt-in flow.
//
// Tokens are opaque bearer credentials: whoever presents one can confirm the
// subscription it was issued for. They must come from a cryptographic random
// source and carry no structure an attacker could extrapolate from.
package token

import (
	"crypto/rand"
	"fmt"
)

// Length is the fixed size of every confirmation token.
const Length = 25

// alphabet is URL-safe, so tokens can be embedded in a query parameter
// without escaping.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// New returns a fresh 25-character alphanumeric token drawn uniformly from
// crypto/rand. Rejection sampling keeps the distribution unbiased: bytes that
// would wrap past the largest multiple of len(alphabet) are discarded.
func New() (string, error) {
	// 256 % 62 != 0, so accept only bytes below the largest multiple of 62.
	const limit = 256 - (256 % len(alphabet)) // 248

	out := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}
