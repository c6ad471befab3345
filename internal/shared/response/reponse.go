package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is the uniform failure body.
type Error struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Code      apperror.Kind     `json:"code"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Details   interface{}       `json:"details,omitempty"`
}

// exposeInternals controls whether Unexpected errors carry their cause in
// details. Disabled in production.
var exposeInternals = true

// SetExposeInternals toggles cause details on Unexpected errors.
func SetExposeInternals(expose bool) {
	exposeInternals = expose
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	Success(c, http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail classifies err and writes the uniform error body. Unexpected errors
// are logged and surfaced generically.
func Fail(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Unexpected(err)
	}

	body := &Error{
		Timestamp: time.Now().UTC(),
		Status:    appErr.Kind.HTTPStatus(),
		Code:      appErr.Kind,
		Error:     appErr.Kind.Label(),
		Message:   appErr.Message,
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		body.Errors = appErr.Fields
	case apperror.KindUnexpected:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unexpected error")
		body.Message = "an internal server error occurred"
		if exposeInternals && appErr.Err != nil {
			body.Details = appErr.Err.Error()
		}
	}

	if appErr.Kind != apperror.KindUnexpected && len(appErr.Details) > 0 {
		body.Details = appErr.Details
	}

	c.AbortWithStatusJSON(body.Status, Response{
		Success: false,
		Error:   body,
	})
}
