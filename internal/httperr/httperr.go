package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteBusiness maps a classified error onto the HTTP status that matches
// its kind. Unclassified errors fall back to 500 with a generic body.
func WriteBusiness(c *gin.Context, err error, message string) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", message)
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, message)
	case KindValidationRejected:
		BadRequest(c, be.Code, message)
	case KindConflictOnMutation:
		Conflict(c, be.Code, message)
	case KindMissingContext:
		Unauthorized(c, be.Code, message)
	case KindTransientNetwork:
		Write(c, http.StatusServiceUnavailable, be.Code, message)
	default:
		Internal(c, be.Code, message)
	}
}
