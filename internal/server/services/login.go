package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/authority"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/ratelimit"
)

// Verifier is implemented by CredentialVerifier.
type Verifier interface {
	VerifyPassword(ctx context.Context, loginID, password string) (string, error)
	VerifyAppToken(ctx context.Context, loginID, appToken string) (string, error)
}

// FailureLimiter throttles repeated failed logins for a login id.
type FailureLimiter interface {
	Check(ctx context.Context, loginID string) error
	RecordFailure(ctx context.Context, loginID string) error
	Reset(ctx context.Context, loginID string) error
}

type verifyFunc func(ctx context.Context, loginID, secret string) (string, error)

// LoginService turns verified credentials into session tokens and forwards
// renew and revoke requests to the token authority. It never retries.
type LoginService struct {
	verifier Verifier
	tokens   authority.TokenProvider
	limiter  FailureLimiter
	logger   logging.Logger
}

// NewLoginService wires the service. limiter may be nil to disable
// failed-login throttling.
func NewLoginService(verifier Verifier, tokens authority.TokenProvider, limiter FailureLimiter, logger logging.Logger) *LoginService {
	return &LoginService{verifier: verifier, tokens: tokens, limiter: limiter, logger: logger}
}

// PasswordLogin verifies a login id and password and issues a token.
func (s *LoginService) PasswordLogin(ctx context.Context, creds models.Credentials) (*models.AuthToken, error) {
	return s.login(ctx, creds, s.verifier.VerifyPassword)
}

// AppTokenLogin verifies a login id and app token and issues a token.
func (s *LoginService) AppTokenLogin(ctx context.Context, creds models.Credentials) (*models.AuthToken, error) {
	return s.login(ctx, creds, s.verifier.VerifyAppToken)
}

// RenewAuthToken asks the authority to renew tokenID. A missing bearer
// token fails without calling the authority.
func (s *LoginService) RenewAuthToken(ctx context.Context, tokenID, token string) (*models.AuthToken, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", common.ErrAuthority)
	}

	t, err := s.tokens.RenewAuthToken(ctx, tokenID, token)
	if err != nil {
		return nil, fmt.Errorf("renew auth token: %w", err)
	}
	return t, nil
}

// RemoveAuthToken asks the authority to revoke tokenID.
func (s *LoginService) RemoveAuthToken(ctx context.Context, tokenID, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing bearer token", common.ErrAuthority)
	}

	if err := s.tokens.RemoveAuthToken(ctx, tokenID, token); err != nil {
		return fmt.Errorf("remove auth token: %w", err)
	}
	return nil
}

func (s *LoginService) login(ctx context.Context, creds models.Credentials, verify verifyFunc) (*models.AuthToken, error) {
	if s.throttled(ctx, creds.LoginID) {
		s.logger.Info(ctx, "login failed", "login_id", creds.LoginID)
		return nil, common.ErrLoginFailed
	}

	userID, err := verify(ctx, creds.LoginID, creds.Secret)
	if err != nil {
		s.logger.Info(ctx, "login failed", "login_id", creds.LoginID)
		s.recordFailure(ctx, creds.LoginID)
		return nil, err
	}
	s.resetFailures(ctx, creds.LoginID)

	token, err := s.tokens.IssueAuthToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("issue auth token: %w", err)
	}
	return token, nil
}

// throttled fails open: only a definite over-limit answer blocks a login.
func (s *LoginService) throttled(ctx context.Context, loginID string) bool {
	if s.limiter == nil {
		return false
	}

	err := s.limiter.Check(ctx, loginID)
	if err == nil {
		return false
	}
	if errors.Is(err, ratelimit.ErrRateLimited) {
		return true
	}
	s.logger.Warn(ctx, "failed-login limiter unavailable", "error", err)
	return false
}

func (s *LoginService) recordFailure(ctx context.Context, loginID string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, loginID); err != nil {
		s.logger.Warn(ctx, "failed-login limiter unavailable", "error", err)
	}
}

func (s *LoginService) resetFailures(ctx context.Context, loginID string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Reset(ctx, loginID); err != nil {
		s.logger.Warn(ctx, "failed-login limiter unavailable", "error", err)
	}
}
