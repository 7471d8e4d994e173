// Package models defines the values passed between the login façade's
// layers: users read from the storage view, parsed credentials and the
// tokens issued by the authority.
package models

// User is the storage view of an account. It is read once per verification
// attempt and never written by this service.
type User struct {
	ID      string
	LoginID string
	Active  bool
	// PasswordSecretID references a row in system_secrets; empty means the
	// account has no password login.
	PasswordSecretID string
	// AppTokenSecretIDs keeps the stored order; verification walks it front
	// to back.
	AppTokenSecretIDs []string
}

// HasPassword reports whether a password secret is referenced.
func (u *User) HasPassword() bool {
	return u.PasswordSecretID != ""
}

// StoredSecret is a hashed secret addressed by id.
type StoredSecret struct {
	ID     string
	Secret string
}
