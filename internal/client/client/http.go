package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/netx"
	"github.com/dmitrijs2005/authgate/internal/server/codec"
)

// locationPrefix is how the login API prefixes token ids in the Location
// header and in action URLs.
const locationPrefix = "authToken/"

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the login API rooted at baseURL,
// e.g. "https://epc.ub.uu.se/login/rest/".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) PasswordLogin(ctx context.Context, loginID, password string) (*Session, error) {
	return c.login(ctx, "password", loginID, password)
}

func (c *HTTPClient) AppTokenLogin(ctx context.Context, loginID, appToken string) (*Session, error) {
	return c.login(ctx, "apptoken", loginID, appToken)
}

func (c *HTTPClient) Renew(ctx context.Context, s *Session) (*Session, error) {
	resp, err := c.send(ctx, http.MethodPost, s.URL, s.Token.Token, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	renewed, err := decodeSession(resp.Body)
	if err != nil {
		return nil, err
	}
	renewed.Token.TokenID = tokenIDFromURL(renewed.URL)
	if renewed.Token.TokenID == "" {
		renewed.Token.TokenID = s.Token.TokenID
	}
	return renewed, nil
}

func (c *HTTPClient) Logout(ctx context.Context, s *Session) error {
	resp, err := c.send(ctx, http.MethodDelete, s.URL, s.Token.Token, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) login(ctx context.Context, endpoint, loginID, secret string) (*Session, error) {
	body := strings.NewReader(loginID + "\n" + secret)

	resp, err := c.send(ctx, http.MethodPost, c.baseURL+endpoint, "", body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, statusError(resp.StatusCode)
	}

	sess, err := decodeSession(resp.Body)
	if err != nil {
		return nil, err
	}
	sess.Token.TokenID = strings.TrimPrefix(resp.Header.Get("Location"), locationPrefix)
	if sess.Token.TokenID == "" {
		sess.Token.TokenID = tokenIDFromURL(sess.URL)
	}
	return sess, nil
}

func (c *HTTPClient) send(ctx context.Context, method, target, token string, body io.Reader) (*netx.Response, error) {
	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", common.MediaTypeAuthToken)
	if method == http.MethodPost && token == "" {
		req.Header.Set("Content-Type", common.MediaTypeLogin)
	}
	if token != "" {
		req.Header.Set(common.AuthTokenHeaderName, token)
	}

	resp, err := netx.Do(c.client, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

func decodeSession(body []byte) (*Session, error) {
	token, actionURL, err := codec.Decode(body)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, URL: actionURL}, nil
}

// tokenIDFromURL returns the last path segment of an action URL
// ".../authToken/{tokenId}", or "" when the URL has no such segment.
func tokenIDFromURL(actionURL string) string {
	u, err := url.Parse(actionURL)
	if err != nil {
		return ""
	}
	dir, id := path.Split(u.Path)
	if id == "" || !strings.HasSuffix(dir, "/"+locationPrefix) {
		return ""
	}
	return id
}

func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}
}
