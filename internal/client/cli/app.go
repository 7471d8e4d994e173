package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authgate/internal/client/client"
	"github.com/dmitrijs2005/authgate/internal/client/config"
	"github.com/dmitrijs2005/authgate/internal/client/session"
	"github.com/dmitrijs2005/authgate/internal/cryptox"
)

var ErrUsage = errors.New("usage: authctl [flags] login|apptoken <loginId> | renew | logout | status | hash")

// SessionStore persists the current session, see session.Store.
type SessionStore interface {
	Save(s *client.Session) error
	Load() (*client.Session, error)
	Delete() error
}

type App struct {
	client client.Client
	store  SessionStore
	reader *bufio.Reader
	out    io.Writer
	hash   func(plain string) (string, error)
}

func NewApp(c *config.Config) *App {
	return &App{
		client: client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		store:  session.NewStore(c.SessionDir),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		hash:   cryptox.HashArgon2id,
	}
}

// Run executes the subcommand in args (flags already removed).
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return a.login(ctx, rest, "Password", a.client.PasswordLogin)
	case "apptoken":
		return a.login(ctx, rest, "App token", a.client.AppTokenLogin)
	case "renew":
		return a.renew(ctx)
	case "logout":
		return a.logout(ctx)
	case "status":
		return a.status()
	case "hash":
		return a.hashSecret()
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}
}
