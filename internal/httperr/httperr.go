package httperr

import (
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

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// WriteBusiness maps a business error to the right status code so callers can
// tell "your request was invalid" from "try again later".
func WriteBusiness(c *gin.Context, err error) bool {
	code := BusinessCode(err)
	if code == "" {
		return false
	}

	switch code {
	case CodeNotFound:
		NotFound(c, code, "Resource not found.")
	case CodeTimeConflict, CodeDailyLimit:
		Conflict(c, code, "The requested slot is no longer available.")
	default:
		BadRequest(c, code, "Request rejected: "+code+".")
	}
	return true
}
