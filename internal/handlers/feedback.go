package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/validation"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

type FeedbackHandler struct {
	recorder  *services.FeedbackRecorder
	validator *validation.SchemaValidator
	logger    *logrus.Logger
}

func NewFeedbackHandler(recorder *services.FeedbackRecorder,
	validator *validation.SchemaValidator, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		recorder:  recorder,
		validator: validator,
		logger:    logger,
	}
}

// Submit handles POST /api/v1/recommendations/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Feedback body must be a JSON object",
			},
		})
		return
	}

	if result := h.validator.ValidateFeedback(raw); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Feedback payload failed schema validation",
				"details": result.Errors,
			},
		})
		return
	}

	var submission models.FeedbackSubmission
	if err := c.ShouldBindBodyWith(&submission, binding.JSON); err != nil {
		message := "Feedback body must include request_id and rating"
		var bindingErrs validator.ValidationErrors
		if errors.As(err, &bindingErrs) {
			missing := make([]string, 0, len(bindingErrs))
			for _, fe := range bindingErrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			message = "Invalid or missing fields: " + strings.Join(missing, ", ")
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": message,
			},
		})
		return
	}

	if err := h.recorder.Record(c.Request.Context(), submission); err != nil {
		h.renderError(c, submission.RequestID, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Get handles GET /api/v1/recommendations/feedback/:requestId.
func (h *FeedbackHandler) Get(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_ID",
				"message": "Request ID must be a UUID",
			},
		})
		return
	}

	feedback, err := h.recorder.Get(c.Request.Context(), requestID)
	if err != nil {
		h.renderError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (h *FeedbackHandler) renderError(c *gin.Context, requestID uuid.UUID, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": validationErr.Error(),
				"details": validationErr.Fields,
			},
		})
	case errors.Is(err, services.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "REQUEST_NOT_FOUND",
				"message": "No recommendation request exists for that request_id",
			},
		})
	case errors.Is(err, services.ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "FEEDBACK_NOT_FOUND",
				"message": "No feedback has been submitted for that request_id",
			},
		})
	default:
		h.logger.WithError(err).WithField("request_id", requestID).Error("Feedback operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "FEEDBACK_FAILED",
				"message": "Failed to process feedback",
			},
		})
	}
}
