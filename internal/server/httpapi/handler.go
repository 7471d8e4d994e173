// Package httpapi exposes the login façade over HTTP using gin.
package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/codec"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/origin"
	"github.com/gin-gonic/gin"
)

const maxPayloadSize = 64 << 10

// LoginAPI is implemented by services.LoginService.
type LoginAPI interface {
	PasswordLogin(ctx context.Context, creds models.Credentials) (*models.AuthToken, error)
	AppTokenLogin(ctx context.Context, creds models.Credentials) (*models.AuthToken, error)
	RenewAuthToken(ctx context.Context, tokenID, token string) (*models.AuthToken, error)
	RemoveAuthToken(ctx context.Context, tokenID, token string) error
}

type loginFunc func(ctx context.Context, creds models.Credentials) (*models.AuthToken, error)

// Handler serves the login endpoints. Error responses never carry a body.
type Handler struct {
	login            LoginAPI
	publicPathPrefix string
	logger           logging.Logger
}

func NewHandler(login LoginAPI, publicPathPrefix string, logger logging.Logger) *Handler {
	return &Handler{login: login, publicPathPrefix: publicPathPrefix, logger: logger}
}

// AppTokenLogin handles POST /apptoken with a "loginId\nappToken" body.
func (h *Handler) AppTokenLogin(c *gin.Context) {
	h.handleLogin(c, h.login.AppTokenLogin)
}

// PasswordLogin handles POST /password with a "loginId\npassword" body.
func (h *Handler) PasswordLogin(c *gin.Context) {
	h.handleLogin(c, h.login.PasswordLogin)
}

// RenewAuthToken handles POST /authToken/:tokenId.
func (h *Handler) RenewAuthToken(c *gin.Context) {
	token, err := h.login.RenewAuthToken(c.Request.Context(), c.Param("tokenId"), c.GetHeader(common.AuthTokenHeaderName))
	if err != nil {
		h.fail(c, opRenew, err)
		return
	}
	h.writeToken(c, opRenew, http.StatusOK, token)
}

// RemoveAuthToken handles DELETE /authToken/:tokenId.
func (h *Handler) RemoveAuthToken(c *gin.Context) {
	err := h.login.RemoveAuthToken(c.Request.Context(), c.Param("tokenId"), c.GetHeader(common.AuthTokenHeaderName))
	if err != nil {
		h.fail(c, opRevoke, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) handleLogin(c *gin.Context, login loginFunc) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadSize))
	if err != nil {
		h.fail(c, opLogin, fmt.Errorf("read payload: %w", err))
		return
	}

	creds, err := models.ParseCredentials(body)
	if err != nil {
		h.fail(c, opLogin, err)
		return
	}

	token, err := login(c.Request.Context(), creds)
	if err != nil {
		h.fail(c, opLogin, err)
		return
	}

	c.Header("Location", "authToken/"+token.TokenID)
	h.writeToken(c, opLogin, http.StatusCreated, token)
}

func (h *Handler) writeToken(c *gin.Context, op operation, status int, token *models.AuthToken) {
	body, err := codec.Encode(token, h.actionURL(c.Request, token.TokenID))
	if err != nil {
		c.Writer.Header().Del("Location")
		h.fail(c, op, err)
		return
	}
	c.Data(status, common.MediaTypeAuthToken, body)
}

func (h *Handler) actionURL(r *http.Request, tokenID string) string {
	base := origin.ResolveBaseURL(origin.RequestURL(r), r.Header.Get(common.ForwardedProtoHeaderName), h.publicPathPrefix)
	return base + "authToken/" + tokenID
}

func (h *Handler) fail(c *gin.Context, op operation, err error) {
	status := statusFor(op, err)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "operation", op.String(), "error", err)
	} else {
		h.logger.Debug(c.Request.Context(), "request rejected", "operation", op.String(), "status", status)
	}
	c.AbortWithStatus(status)
}
