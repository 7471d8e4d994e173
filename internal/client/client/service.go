package client

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// Session is a logged-in session: the token and the URL its renew and
// logout requests go to.
type Session struct {
	Token *models.AuthToken `json:"token"`
	URL   string            `json:"url"`
}

type Client interface {
	PasswordLogin(ctx context.Context, loginID, password string) (*Session, error)
	AppTokenLogin(ctx context.Context, loginID, appToken string) (*Session, error)
	Renew(ctx context.Context, s *Session) (*Session, error)
	Logout(ctx context.Context, s *Session) error
}
