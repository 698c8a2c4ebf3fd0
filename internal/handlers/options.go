package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
)

type OptionsHandler struct {
	options services.OptionsService
	logger  *logrus.Logger
}

func NewOptionsHandler(options services.OptionsService, logger *logrus.Logger) *OptionsHandler {
	return &OptionsHandler{
		options: options,
		logger:  logger,
	}
}

// Get handles GET /api/v1/criteria-options.
func (h *OptionsHandler) Get(c *gin.Context) {
	opts, err := h.options.Options(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load criteria options")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "OPTIONS_UNAVAILABLE",
				"message": "Failed to load criteria options",
			},
		})
		return
	}

	c.JSON(http.StatusOK, opts)
}

// Invalidate handles POST /api/v1/criteria-options/invalidate. The next Get
// reloads the enumerations from the database.
func (h *OptionsHandler) Invalidate(c *gin.Context) {
	if err := h.options.Invalidate(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to invalidate criteria options cache")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "OPTIONS_INVALIDATION_FAILED",
				"message": "Failed to invalidate criteria options cache",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
