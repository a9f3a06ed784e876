package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/hardwarehub/internal/app/models/dto"
	"github.com/emre/hardwarehub/internal/pkg/apperrors"
)

// HandleAPIError maps core errors onto web-shell responses. Every
// gateway failure is converted to a notification-shaped payload here;
// nothing propagates uncaught into rendering.
func HandleAPIError(c *gin.Context, err error) {
	message := apperrors.UserMessage(err)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, message))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials, "Invalid username or password"))
	case errors.Is(err, apperrors.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeLoginRequired, "You must be logged in"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrorCodeForbidden, "Permission denied"))
	case apperrors.Is(err, apperrors.ErrNotFound, apperrors.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Not found"))
	case errors.Is(err, apperrors.ErrNoPendingDelete):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(dto.ErrorCodeNoPendingDelete, "Delete was not confirmed"))
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(dto.ErrorCodeBackendFailure, message))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, apperrors.GenericMessage))
	}
}
