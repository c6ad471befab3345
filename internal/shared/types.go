package shared

import (
	"time"

	"github.com/google/uuid"
)

// RecordMeta holds the identity and audit timestamps shared by every
// persisted entity. Entities embed it instead of inheriting from a base type.
// The store assigns all three fields; clients never set them.
type RecordMeta struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DateLayout is the wire format for calendar dates (publication date).
const DateLayout = "2006-01-02"
