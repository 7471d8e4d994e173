// Package authority talks to the external token authority that issues,
// renews and revokes session tokens.
package authority

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// TokenProvider is the token lifecycle as seen from the login façade.
// Every failure satisfies errors.Is(err, common.ErrAuthority). Revoking a
// token twice is expected to fail the second time.
type TokenProvider interface {
	IssueAuthToken(ctx context.Context, userID string) (*models.AuthToken, error)
	RenewAuthToken(ctx context.Context, tokenID, token string) (*models.AuthToken, error)
	RemoveAuthToken(ctx context.Context, tokenID, token string) error
}
