package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docuchat/internal/domain"
)

// Success writes the {success, data} envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Fail writes the {success, error: {code, message}} envelope
func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   domain.APIError{Code: code, Message: message},
	})
}

// FailFromError maps a service error onto the stable error envelope
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Fail(c, http.StatusNotFound, domain.CodeNotFound, "session not found")
	case errors.Is(err, domain.ErrInvalidRequest):
		Fail(c, http.StatusBadRequest, domain.CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, domain.CodeAuthRequired, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, domain.CodeChat, err.Error())
	}
}
