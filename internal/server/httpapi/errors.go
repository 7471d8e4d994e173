package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/common"
)

type operation int

const (
	opLogin operation = iota
	opRenew
	opRevoke
)

func (o operation) String() string {
	switch o {
	case opLogin:
		return "login"
	case opRenew:
		return "renew"
	case opRevoke:
		return "revoke"
	default:
		return "unknown"
	}
}

// statusFor maps a failure of op to the response status. This is the only
// place errors become status codes.
//
//	                    login  renew  revoke
//	ErrLoginFailed       401     -      -
//	ErrAuthority         401    401    404
//	anything else        500    500    500
//
// A malformed login payload has no status of its own and falls through to
// 500.
func statusFor(op operation, err error) int {
	switch {
	case errors.Is(err, common.ErrLoginFailed):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrAuthority):
		if op == opRevoke {
			return http.StatusNotFound
		}
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
