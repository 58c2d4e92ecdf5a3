package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// UserRecord is the persisted shape of a user row, without roles
type UserRecord struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Age       int32
	Username  string
	Password  string
}

// UserRepository defines the interface for user persistence. Implementations
// must enforce username uniqueness as the final backstop behind the service
// pre-check and surface a violation as ErrUsernameTaken.
type UserRepository interface {
	// CreateUser inserts a new user row
	CreateUser(ctx context.Context, rec UserRecord) (UserRecord, error)
	// UpdateUser replaces all mutable fields of an existing user row
	UpdateUser(ctx context.Context, rec UserRecord) (UserRecord, error)
	// DeleteUser removes a user and its role associations
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// GetUserWithRoles gets a user with their roles loaded
	GetUserWithRoles(ctx context.Context, id uuid.UUID) (User, error)
	// GetUserByUsername gets a user by exact, case-sensitive username
	GetUserByUsername(ctx context.Context, username string) (User, error)
	// FindUsersWithRoles returns all users with roles, ordered by username
	FindUsersWithRoles(ctx context.Context) ([]User, error)

	// CreateUserRole creates a user-role association
	CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) error
	// DeleteUserRoles removes all role associations for a user
	DeleteUserRoles(ctx context.Context, userID uuid.UUID) error
}
