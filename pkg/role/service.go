package role

import (
	"context"

	"github.com/google/uuid"
)

// RoleService provides methods for role management
type RoleService struct {
	repo RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// FindRoles returns every role ordered by name; empty slice when none exist
func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	return s.repo.FindRoles(ctx)
}

// GetRole retrieves a role by id
func (s *RoleService) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	return s.repo.GetRoleById(ctx, id)
}

// GetRoleByName retrieves a role by exact name match. Returns ErrRoleNotFound
// when absent; bootstrap relies on this to avoid duplicate seeding.
func (s *RoleService) GetRoleByName(ctx context.Context, name string) (Role, error) {
	if name == "" {
		return Role{}, ErrEmptyRoleName
	}
	return s.repo.GetRoleByName(ctx, name)
}

// FindRolesByIds resolves a caller-supplied set of role ids into Role records.
// Unknown ids are silently dropped and duplicate input ids collapse.
func (s *RoleService) FindRolesByIds(ctx context.Context, ids []uuid.UUID) ([]Role, error) {
	return s.repo.FindRolesByIds(ctx, ids)
}

// CreateRole adds a new role
func (s *RoleService) CreateRole(ctx context.Context, name string) (Role, error) {
	if name == "" {
		return Role{}, ErrEmptyRoleName
	}
	return s.repo.CreateRole(ctx, name)
}
