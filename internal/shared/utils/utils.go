package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a path parameter, reporting false for anything that is not
// a non-nil UUID.
func ParseUUID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// NormalizeTag upper-cases an enum tag from a URL and accepts '-' for '_'
// ("non-fiction" -> "NON_FICTION").
func NormalizeTag(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}
