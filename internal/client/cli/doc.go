// Package cli implements authctl, a small command-line client for the
// authgate login API.
//
// Commands:
//
//	login <loginId>      password login, stores the session
//	apptoken <loginId>   app-token login, stores the session
//	renew                renews the stored session
//	logout               revokes the stored session and forgets it
//	hash                 prints an argon2id hash of a secret for provisioning
//	status               prints the stored session
//
// Secrets are read from the terminal without echo, or as one line from stdin
// when stdin is not a terminal.
package cli
