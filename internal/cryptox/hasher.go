// Package cryptox wraps the hashing primitives used to check submitted
// secrets against stored hashes.
package cryptox

import "strings"

// TextHasher decides whether a plaintext secret matches a stored hash.
type TextHasher interface {
	Matches(plain, hashed string) bool
}

// Hasher matches against argon2id PHC strings and bcrypt hashes, chosen by
// the stored hash prefix. Hashes in any other format never match.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

func (h *Hasher) Matches(plain, hashed string) bool {
	switch {
	case strings.HasPrefix(hashed, "$"+argon2idID+"$"):
		return matchArgon2id(plain, hashed)
	case isBcrypt(hashed):
		return matchBcrypt(plain, hashed)
	default:
		return false
	}
}
