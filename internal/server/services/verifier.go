// Package services holds the login façade's business logic: credential
// verification against the storage view and the token lifecycle calls
// made on a verified user's behalf.
package services

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/cryptox"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// UserStorage is the read-only storage view the verifier consults.
type UserStorage interface {
	GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error)
	GetSystemSecretByID(ctx context.Context, id string) (*models.StoredSecret, error)
}

// CredentialVerifier checks a login id and a secret against the storage
// view. Every kind of failure, including an unknown login id, an inactive
// user or a storage error, is reported as common.ErrLoginFailed and nothing
// else.
type CredentialVerifier struct {
	storage UserStorage
	hasher  cryptox.TextHasher
}

func NewCredentialVerifier(storage UserStorage, hasher cryptox.TextHasher) *CredentialVerifier {
	return &CredentialVerifier{storage: storage, hasher: hasher}
}

// VerifyPassword returns the user id when password matches the user's
// password secret.
func (v *CredentialVerifier) VerifyPassword(ctx context.Context, loginID, password string) (string, error) {
	user, err := v.activeUser(ctx, loginID)
	if err != nil {
		return "", err
	}
	if !user.HasPassword() {
		return "", common.ErrLoginFailed
	}

	ok, err := v.matches(ctx, user.PasswordSecretID, password)
	if err != nil || !ok {
		return "", common.ErrLoginFailed
	}
	return user.ID, nil
}

// VerifyAppToken returns the user id when appToken matches any of the
// user's app-token secrets. References are tried in stored order and the
// first match wins.
func (v *CredentialVerifier) VerifyAppToken(ctx context.Context, loginID, appToken string) (string, error) {
	user, err := v.activeUser(ctx, loginID)
	if err != nil {
		return "", err
	}

	for _, ref := range user.AppTokenSecretIDs {
		ok, err := v.matches(ctx, ref, appToken)
		if err != nil {
			return "", common.ErrLoginFailed
		}
		if ok {
			return user.ID, nil
		}
	}
	return "", common.ErrLoginFailed
}

func (v *CredentialVerifier) activeUser(ctx context.Context, loginID string) (*models.User, error) {
	user, err := v.storage.GetUserByLoginID(ctx, loginID)
	if err != nil || user == nil || !user.Active {
		return nil, common.ErrLoginFailed
	}
	return user, nil
}

func (v *CredentialVerifier) matches(ctx context.Context, secretID, plain string) (bool, error) {
	secret, err := v.storage.GetSystemSecretByID(ctx, secretID)
	if err != nil {
		return false, err
	}
	return v.hasher.Matches(plain, secret.Secret), nil
}
