package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/netx"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

const serviceTokenTTL = time.Minute

// record is the token representation exchanged with the authority.
type record struct {
	Token           string   `json:"token"`
	TokenID         string   `json:"tokenId"`
	ValidUntil      int64    `json:"validUntil"`
	RenewUntil      int64    `json:"renewUntil"`
	UserID          string   `json:"userId"`
	LoginID         string   `json:"loginId"`
	FirstName       string   `json:"firstName,omitempty"`
	LastName        string   `json:"lastName,omitempty"`
	PermissionUnits []string `json:"permissionUnits,omitempty"`
}

func (r *record) toModel() *models.AuthToken {
	return &models.AuthToken{
		Token:           r.Token,
		TokenID:         r.TokenID,
		ValidUntil:      r.ValidUntil,
		RenewUntil:      r.RenewUntil,
		UserID:          r.UserID,
		LoginID:         r.LoginID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		PermissionUnits: r.PermissionUnits,
	}
}

// HTTPClient is a TokenProvider backed by the authority's REST interface.
//
// When a secret is configured every call carries an HS256 service token in
// the Authorization header.
type HTTPClient struct {
	baseURL string
	secret  []byte
	client  *http.Client
}

var _ TokenProvider = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the authority at baseURL. The base URL
// gets a trailing slash if it lacks one.
func NewHTTPClient(baseURL string, timeout time.Duration, secret string) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
	if secret != "" {
		c.secret = []byte(secret)
	}
	return c
}

func (c *HTTPClient) IssueAuthToken(ctx context.Context, userID string) (*models.AuthToken, error) {
	resp, err := c.send(ctx, http.MethodPost, "authToken/"+url.PathEscape(userID), "")
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp, "issue")
}

func (c *HTTPClient) RenewAuthToken(ctx context.Context, tokenID, token string) (*models.AuthToken, error) {
	resp, err := c.send(ctx, http.MethodPost, "authToken/"+url.PathEscape(tokenID)+"/renew", token)
	if err != nil {
		return nil, err
	}

	t, err := decodeRecord(resp, "renew")
	if err != nil {
		return nil, err
	}
	if t.TokenID == "" {
		t.TokenID = tokenID
	}
	return t, nil
}

func (c *HTTPClient) RemoveAuthToken(ctx context.Context, tokenID, token string) error {
	resp, err := c.send(ctx, http.MethodDelete, "authToken/"+url.PathEscape(tokenID), token)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("%w: revoke: status %d", common.ErrAuthority, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, path, bearer string) (*netx.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrAuthority, err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set(common.AuthTokenHeaderName, bearer)
	}

	if c.secret != nil {
		st, err := auth.GenerateToken("login", c.secret, serviceTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrAuthority, err)
		}
		req.Header.Set("Authorization", "Bearer "+st)
	}

	resp, err := netx.Do(c.client, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrAuthority, err)
	}
	return resp, nil
}

func decodeRecord(resp *netx.Response, op string) (*models.AuthToken, error) {
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s: status %d", common.ErrAuthority, op, resp.StatusCode)
	}

	var r record
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrAuthority, op, err)
	}
	if r.Token == "" {
		return nil, fmt.Errorf("%w: %s: empty token", common.ErrAuthority, op)
	}
	return r.toModel(), nil
}
