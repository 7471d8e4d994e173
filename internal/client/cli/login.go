package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authgate/internal/client/client"
	"github.com/dmitrijs2005/authgate/internal/common"
)

type loginFunc func(ctx context.Context, loginID, secret string) (*client.Session, error)

func (a *App) login(ctx context.Context, args []string, prompt string, login loginFunc) error {
	var loginID string
	if len(args) > 0 {
		loginID = args[0]
	} else {
		var err error
		loginID, err = GetSimpleText(a.reader, "Enter login id", a.out)
		if err != nil {
			return err
		}
	}

	secret, err := GetSecret(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	s, err := login(ctx, loginID, secret)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return fmt.Errorf("login unsuccessful: %w", err)
		}
		return err
	}

	if err := a.store.Save(s); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s, token %s valid until %s\n",
		s.Token.LoginID, s.Token.TokenID, formatMillis(s.Token.ValidUntil))
	return nil
}

func (a *App) renew(ctx context.Context) error {
	s, err := a.loadSession()
	if err != nil {
		return err
	}

	renewed, err := a.client.Renew(ctx, s)
	if err != nil {
		return fmt.Errorf("renew unsuccessful: %w", err)
	}

	// the renew response does not repeat the user details
	if renewed.Token.LoginID == "" {
		renewed.Token.LoginID = s.Token.LoginID
		renewed.Token.UserID = s.Token.UserID
	}

	if err := a.store.Save(renewed); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Renewed token %s, valid until %s\n", renewed.Token.TokenID, formatMillis(renewed.Token.ValidUntil))
	return nil
}

func (a *App) logout(ctx context.Context) error {
	s, err := a.loadSession()
	if err != nil {
		return err
	}

	err = a.client.Logout(ctx, s)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("logout unsuccessful: %w", err)
	}

	if err := a.store.Delete(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) status() error {
	s, err := a.loadSession()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Login id:    %s\nToken id:    %s\nValid until: %s\nRenew until: %s\nURL:         %s\n",
		s.Token.LoginID, s.Token.TokenID,
		formatMillis(s.Token.ValidUntil), formatMillis(s.Token.RenewUntil), s.URL)
	return nil
}

func (a *App) loadSession() (*client.Session, error) {
	s, err := a.store.Load()
	if errors.Is(err, common.ErrorNotFound) {
		return nil, errors.New("not logged in")
	}
	return s, err
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
