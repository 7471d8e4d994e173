package common

// AuthTokenHeaderName is the HTTP header carrying the current bearer token
// on renew and revoke requests.
const AuthTokenHeaderName = "authToken"

// ForwardedProtoHeaderName is set by a trusted reverse proxy to the scheme the
// client originally used.
const ForwardedProtoHeaderName = "X-Forwarded-Proto"

// Media types used on the wire.
const (
	MediaTypeLogin     = "application/vnd.uub.login"
	MediaTypeAuthToken = "application/vnd.uub.authToken+json"
)
