package middleware

import (
	"errors"
	"net/http"
	"strings"

	"fleet-console/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var errUnsupportedMediaType = errors.New("request body must be application/json")

// RequireJSON rejects bodies that are not JSON before binding is attempted.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			return
		}
		ct := c.ContentType()
		if !strings.EqualFold(ct, gin.MIMEJSON) {
			httperr.AbortWithError(c, http.StatusUnsupportedMediaType, errUnsupportedMediaType, "Unsupported media type", nil)
		}
	}
}
