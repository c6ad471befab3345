package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", err).
					Msg("Panic recovered")

				response.Fail(c, apperror.Unexpected(fmt.Errorf("panic: %v", err)))
			}
		}()

		c.Next()
	}
}
