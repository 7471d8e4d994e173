// Package common defines shared constants and sentinel errors used across
// the server and client layers of authgate. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized is what the client library reports for a 401.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrLoginFailed is the only error a credential verification ever
	// reports. It carries no cause so callers cannot tell an unknown login
	// id from a wrong secret or an inactive account.
	ErrLoginFailed = errors.New("login failed")

	// ErrAuthority marks a rejection by, or an outage of, the token authority.
	ErrAuthority = errors.New("token authority error")

	// ErrMalformedRequest marks a login payload that is not exactly two lines.
	ErrMalformedRequest = errors.New("malformed login payload")
)
