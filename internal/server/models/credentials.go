package models

import (
	"strings"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Credentials is a login id plus a secret, either a password or an app token.
type Credentials struct {
	LoginID string
	Secret  string
}

// ParseCredentials splits a login payload of the form "loginId\nsecret".
// Trailing line terminators are dropped and CRLF line endings are accepted.
// Anything other than exactly two lines yields common.ErrMalformedRequest.
func ParseCredentials(body []byte) (Credentials, error) {
	text := strings.TrimRight(string(body), "\r\n")

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		return Credentials{}, common.ErrMalformedRequest
	}

	return Credentials{
		LoginID: strings.TrimSuffix(lines[0], "\r"),
		Secret:  strings.TrimSuffix(lines[1], "\r"),
	}, nil
}
