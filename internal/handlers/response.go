package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/elderbridge-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrInvalidCategory):
		RespondError(c, http.StatusBadRequest, "invalid_category", err)
	case errors.Is(err, services.ErrUnsupportedMediaType):
		RespondError(c, http.StatusUnsupportedMediaType, "unsupported_media_type", err)
	case errors.Is(err, services.ErrUnreadableDocument):
		RespondError(c, http.StatusBadRequest, "unreadable_document", err)
	case errors.Is(err, services.ErrEmptyDocument):
		RespondError(c, http.StatusBadRequest, "empty_document", err)
	case errors.Is(err, services.ErrGenerationUnavailable):
		RespondError(c, http.StatusBadGateway, "generation_unavailable", err)
	case errors.Is(err, services.ErrMalformedGenerationOutput):
		RespondError(c, http.StatusBadGateway, "malformed_generation_output", err)
	case errors.Is(err, services.ErrNoValidItems):
		RespondError(c, http.StatusBadGateway, "no_valid_items", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
