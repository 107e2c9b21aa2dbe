package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/yungbote/cemse-backend/internal/pkg/errors"
	"github.com/yungbote/cemse-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
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

func RespondAPIError(c *gin.Context, err *apierr.Error) {
	if err == nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: err.Error(),
			Code:    err.Code,
			Field:   err.Field,
		},
	})
}

// Abort writes err and stops the handler chain.
func Abort(c *gin.Context, err *apierr.Error) {
	RespondAPIError(c, err)
	c.Abort()
}

// FromDomain maps a pipeline error onto its HTTP form. Storage causes are
// replaced with a generic message; callers log the original.
func FromDomain(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		var ve *apperr.ValidationError
		errors.As(err, &ve)
		return apierr.Validation(ve.Field, ve)
	case apperr.KindNotFound:
		return apierr.NotFound("business plan").WithCause(err)
	case apperr.KindConflict:
		return apierr.Conflict("a business plan with this title already exists").WithCause(err)
	default:
		return apierr.Internal(err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
