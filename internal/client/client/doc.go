// Package client talks to the authgate login API over HTTP.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     session lifecycle: PasswordLogin, AppTokenLogin, Renew and Logout.
//  2. A concrete HTTP implementation (see HTTPClient) that sends the
//     two-line login payload, decodes the returned token document and
//     follows its action link for renew and logout.
//
// # Error Handling
//
// Status codes map to sentinel errors that callers can match with
// errors.Is: 401 to common.ErrorUnauthorized, 404 to common.ErrorNotFound.
// Transport failures are reported as ErrUnavailable.
package client
