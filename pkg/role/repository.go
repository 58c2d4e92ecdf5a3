package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoleName = errors.New("role name cannot be empty")
	ErrRoleNotFound  = errors.New("role not found")
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindRoles returns all roles ordered by name
	FindRoles(ctx context.Context) ([]Role, error)
	// GetRoleById retrieves a role by id
	GetRoleById(ctx context.Context, id uuid.UUID) (Role, error)
	// GetRoleByName retrieves a role by exact name
	GetRoleByName(ctx context.Context, name string) (Role, error)
	// FindRolesByIds resolves a set of role ids; unknown ids are dropped
	FindRolesByIds(ctx context.Context, ids []uuid.UUID) ([]Role, error)
	// CreateRole inserts a new role and returns it with id populated
	CreateRole(ctx context.Context, name string) (Role, error)
}
