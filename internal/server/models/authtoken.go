package models

// AuthToken is a session token as handed out by the token authority. It
// lives for a single request/response cycle.
type AuthToken struct {
	Token   string
	TokenID string
	// ValidUntil and RenewUntil are epoch milliseconds.
	ValidUntil int64
	RenewUntil int64
	UserID     string
	LoginID    string
	// FirstName and LastName are optional; empty means absent.
	FirstName       string
	LastName        string
	PermissionUnits []string
}
