// Package origin derives the externally visible base URL of the login API
// for a request, honouring a scheme reported by a fronting proxy.
package origin

import (
	"net/http"
	"strings"
)

// ResolveBaseURL cuts requestURL at the "/" that starts its path, appends
// publicPathPrefix and, when forwardedProto is non-empty, replaces every
// "http:" in the result with forwardedProto+":".
//
// The rewrite is a plain substring replacement; the URL is never parsed. A
// requestURL without a path is used as is.
func ResolveBaseURL(requestURL, forwardedProto, publicPathPrefix string) string {
	base := requestURL
	start := 0
	if i := strings.Index(requestURL, "://"); i >= 0 {
		start = i + len("://")
	}
	if i := strings.IndexByte(requestURL[start:], '/'); i >= 0 {
		base = requestURL[:start+i]
	}

	base += publicPathPrefix

	if forwardedProto != "" {
		base = strings.ReplaceAll(base, "http:", forwardedProto+":")
	}
	return base
}

// RequestURL rebuilds the absolute URL a client used to reach r. The scheme
// comes from the TLS state and the host from the Host header.
func RequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	host := r.Host
	if host == "" {
		host = r.URL.Host
	}

	uri := r.RequestURI
	if !strings.HasPrefix(uri, "/") {
		uri = r.URL.RequestURI()
	}

	return scheme + "://" + host + uri
}
