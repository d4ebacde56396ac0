// Package respond holds the JSON envelope shared by all HTTP handlers:
// success bodies are {"data": ..., "meta": ...}, error bodies are
// {"error": {name, code, message}}.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"canopy/backend/internal/apperror"
)

type errorBody struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Data writes a success envelope. A nil data with a nil meta writes an
// empty body so 204-style responses stay bodyless.
func Data(c *gin.Context, status int, data any, meta any) {
	if data == nil && meta == nil {
		c.Status(status)
		return
	}
	body := gin.H{"data": data}
	if meta != nil {
		body["meta"] = meta
	}
	c.JSON(status, body)
}

// Error maps a use-case error to the wire. Typed operational errors
// carry their own status and machine code; anything else is a bug
// surfaced as an opaque 500.
func Error(c *gin.Context, log zerolog.Logger, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if !appErr.IsOperational() {
			log.Error().Err(err).Str("error_id", appErr.ID).Msg("programmer error")
		}
		c.JSON(appErr.Status, gin.H{"error": errorBody{
			Name:    appErr.Name,
			Code:    appErr.Code,
			Message: appErr.Message,
		}})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
		Name:    "canopy.1.error.internal",
		Code:    "internal",
		Message: "Internal server error",
	}})
}

// BadRequest writes the fixed envelope for malformed request input
// (unparseable JSON, invalid path parameters).
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{
		Name:    "canopy.1.error.request.invalid_request",
		Code:    "invalid-request",
		Message: message,
	}})
}
