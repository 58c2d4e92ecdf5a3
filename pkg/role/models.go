package role

import (
	"github.com/google/uuid"
)

// Role represents a named permission grouping assigned to zero or more users.
// The name is the externally meaningful identity of a role: two roles with the
// same name are the same role, even though lookups by id are also supported.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
