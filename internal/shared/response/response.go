package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookmanager/internal/shared"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error codes
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	ErrorWithDetails(c, statusCode, code, message, nil)
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, CodeInternal, message)
}

// ValidationError reports request field errors as a field -> message map.
func ValidationError(c *gin.Context, errs validation.Errors) {
	details := make(map[string]string, len(errs))
	for field, err := range errs {
		details[field] = err.Error()
	}
	ErrorWithDetails(c, http.StatusBadRequest, CodeValidationFailed, "request validation failed", details)
}

// HandleError writes the response for any error returned by validation or a service.
// Business errors become 400 with their kind as code; everything else is a logged 500
// whose message does not leak internals.
func HandleError(c *gin.Context, err error) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		ValidationError(c, errs)
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		ErrorWithDetails(c, http.StatusBadRequest, string(de.Kind), de.Message, map[string]string{
			de.Field: de.Message,
		})
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg("unhandled error")
	InternalServerError(c, "internal server error")
}
