package role

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[uuid.UUID]Role
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles: make(map[uuid.UUID]Role),
	}
}

// FindRoles returns all roles ordered by name
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

// GetRoleById retrieves a role by id
func (r *InMemoryRoleRepository) GetRoleById(ctx context.Context, id uuid.UUID) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return role, nil
}

// GetRoleByName retrieves a role by exact name
func (r *InMemoryRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return Role{}, ErrRoleNotFound
}

// FindRolesByIds resolves a set of role ids; unknown ids are dropped and
// duplicate ids collapse
func (r *InMemoryRoleRepository) FindRolesByIds(ctx context.Context, ids []uuid.UUID) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uuid.UUID]bool, len(ids))
	roles := []Role{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if role, ok := r.roles[id]; ok {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

// CreateRole creates a new role
func (r *InMemoryRoleRepository) CreateRole(ctx context.Context, name string) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role := Role{ID: uuid.New(), Name: name}
	r.roles[role.ID] = role
	return role, nil
}
