package user

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/role"
)

// InMemoryUserRepository implements UserRepository using in-memory storage.
// Role records live in the supplied role repository; reads resolve role ids
// through it so the loaded role set always reflects the latest state.
type InMemoryUserRepository struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]UserRecord
	userRoles map[uuid.UUID][]uuid.UUID // userID -> []roleID
	roles     role.RoleRepository
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository(roles role.RoleRepository) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:     make(map[uuid.UUID]UserRecord),
		userRoles: make(map[uuid.UUID][]uuid.UUID),
		roles:     roles,
	}
}

// CreateUser inserts a new user row
func (r *InMemoryUserRepository) CreateUser(ctx context.Context, rec UserRecord) (UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == rec.Username {
			return UserRecord{}, ErrUsernameTaken
		}
	}

	rec.ID = uuid.New()
	r.users[rec.ID] = rec
	r.userRoles[rec.ID] = []uuid.UUID{}
	return rec, nil
}

// UpdateUser replaces all mutable fields of an existing user row
func (r *InMemoryUserRepository) UpdateUser(ctx context.Context, rec UserRecord) (UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[rec.ID]; !ok {
		return UserRecord{}, ErrUserNotFound
	}
	for id, existing := range r.users {
		if existing.Username == rec.Username && id != rec.ID {
			return UserRecord{}, ErrUsernameTaken
		}
	}

	r.users[rec.ID] = rec
	return rec, nil
}

// DeleteUser removes a user and its role associations
func (r *InMemoryUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	delete(r.userRoles, id)
	return nil
}

func (r *InMemoryUserRepository) loadUser(ctx context.Context, rec UserRecord) (User, error) {
	roles, err := r.roles.FindRolesByIds(ctx, r.userRoles[rec.ID])
	if err != nil {
		return User{}, err
	}
	return User{
		ID:        rec.ID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Age:       rec.Age,
		Username:  rec.Username,
		Password:  rec.Password,
		Roles:     roles,
	}, nil
}

// GetUserWithRoles gets a user with their roles loaded
func (r *InMemoryUserRepository) GetUserWithRoles(ctx context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return r.loadUser(ctx, rec)
}

// GetUserByUsername gets a user by exact, case-sensitive username
func (r *InMemoryUserRepository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.users {
		if rec.Username == username {
			return r.loadUser(ctx, rec)
		}
	}
	return User{}, ErrUserNotFound
}

// FindUsersWithRoles returns all users with their roles, ordered by username
func (r *InMemoryUserRepository) FindUsersWithRoles(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []User{}
	for _, rec := range r.users {
		u, err := r.loadUser(ctx, rec)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// CreateUserRole creates a user-role association
func (r *InMemoryUserRepository) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrUserNotFound
	}
	for _, id := range r.userRoles[userID] {
		if id == roleID {
			return nil
		}
	}
	r.userRoles[userID] = append(r.userRoles[userID], roleID)
	return nil
}

// DeleteUserRoles removes all role associations for a user
func (r *InMemoryUserRepository) DeleteUserRoles(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.userRoles[userID] = []uuid.UUID{}
	return nil
}
