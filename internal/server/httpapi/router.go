package httpapi

import (
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the login routes at the root of a new gin engine.
func NewRouter(h *Handler, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))

	r.POST("/apptoken", h.AppTokenLogin)
	r.POST("/password", h.PasswordLogin)
	r.POST("/authToken/:tokenId", h.RenewAuthToken)
	r.DELETE("/authToken/:tokenId", h.RemoveAuthToken)

	return r
}
