package cryptox

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func isBcrypt(hashed string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hashed, prefix) {
			return true
		}
	}
	return false
}

func matchBcrypt(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
