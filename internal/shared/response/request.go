package response

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/internal/shared/validation"
)

// BindJSON decodes the body into req and runs its rules. On failure it writes
// a ValidationFailed response and returns false.
func BindJSON(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		Fail(c, apperror.FromValidation(err))
		return false
	}

	if err := req.Validate(); err != nil {
		Fail(c, apperror.FromValidation(err))
		return false
	}

	return true
}

// ParamUUID parses the named path parameter. On failure it writes a
// ValidationFailed response and returns false.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		Fail(c, apperror.InvalidParam(name, "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// QueryInt reads an integer query parameter, falling back to def when it is
// absent. A present but malformed value is a ValidationFailed response.
func QueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		Fail(c, apperror.InvalidParam(name, "must be an integer"))
		return 0, false
	}
	return n, true
}
