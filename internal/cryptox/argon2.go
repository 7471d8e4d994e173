package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2idID    = "argon2id"
	saltLength    = 16
	minSaltLength = 8
)

var ErrInvalidHash = errors.New("invalid argon2id hash")

// Argon2Params are the argon2id cost parameters written into a PHC string.
type Argon2Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params is used by HashArgon2id.
var DefaultArgon2Params = Argon2Params{Memory: 64 * 1024, Time: 1, Threads: 4, KeyLen: 32}

// HashArgon2id hashes plain with a random salt and DefaultArgon2Params and
// returns a PHC string: $argon2id$v=19$m=..,t=..,p=..$salt$hash.
func HashArgon2id(plain string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hashArgon2id(plain, salt, DefaultArgon2Params), nil
}

func hashArgon2id(plain string, salt []byte, p Argon2Params) string {
	key := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idID,
		argon2.Version,
		p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func matchArgon2id(plain, encoded string) bool {
	p, salt, key, err := parsePHC(encoded)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return subtle.ConstantTimeCompare(computed, key) == 1
}

func parsePHC(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2idID {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := decodeBase64(parts[4])
	if err != nil || len(salt) < minSaltLength {
		return p, nil, nil, ErrInvalidHash
	}

	key, err := decodeBase64(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}

// decodeBase64 accepts both unpadded (reference encoder) and padded input.
func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(s)
}
