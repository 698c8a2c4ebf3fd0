package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/middleware"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	config *config.Config
	logger *logrus.Logger
}

func NewAuthHandler(auth *services.AuthService, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		config: cfg,
		logger: logger,
	}
}

type tokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// Token handles POST /api/v1/auth/token: exchanges a pre-shared API key for
// a bearer token carrying the role configured for that key.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Token request must include api_key",
			},
		})
		return
	}

	role, ok := h.config.Auth.APIKeys[req.APIKey]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{
				"code":    "INVALID_API_KEY",
				"message": "Unknown API key",
			},
		})
		return
	}

	token, err := h.auth.GenerateToken(uuid.New(), role)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "TOKEN_GENERATION_FAILED",
				"message": "Failed to generate token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(h.config.Auth.TokenTTL.Seconds()),
	})
}

// Revoke handles DELETE /api/v1/auth/token: ends the caller's session so the
// presented token stops validating.
func (h *AuthHandler) Revoke(c *gin.Context) {
	userID, _ := middleware.GetUserFromContext(c)
	if err := h.auth.RevokeToken(userID); err != nil {
		h.logger.WithError(err).Error("Failed to revoke session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "REVOCATION_FAILED",
				"message": "Failed to revoke session",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
