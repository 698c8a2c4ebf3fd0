package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/validation"
)

type RecommendationHandler struct {
	engine    *services.RecommendationEngine
	validator *validation.SchemaValidator
	logger    *logrus.Logger
}

func NewRecommendationHandler(engine *services.RecommendationEngine,
	validator *validation.SchemaValidator, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		engine:    engine,
		validator: validator,
		logger:    logger,
	}
}

// Recommend handles POST /api/v1/recommendations.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Request body must be a JSON object",
			},
		})
		return
	}

	if result := h.validator.ValidateCriteria(raw); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Criteria payload failed schema validation",
				"details": result.Errors,
			},
		})
		return
	}

	result, err := h.engine.Recommend(c.Request.Context(), raw)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "VALIDATION_FAILED",
					"message": validationErr.Error(),
					"details": validationErr.Fields,
				},
			})
			return
		}

		h.logger.WithError(err).Error("Failed to generate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
