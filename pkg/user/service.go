package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errs "github.com/tendant/simple-admin/pkg/errors"
	"github.com/tendant/simple-admin/pkg/role"
)

var validate = validator.New()

// UserService provides user management operations. It owns the username
// uniqueness invariant and composes roles through the role service when
// assembling a user. Passwords are persisted as given; hashing happens at the
// caller boundary so bootstrap can hash exactly once.
type UserService struct {
	repo        UserRepository
	roleService *role.RoleService
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, roleService *role.RoleService) *UserService {
	return &UserService{
		repo:        repo,
		roleService: roleService,
	}
}

// validationError converts validator output into a structured validation error
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Wrap(err, errs.ErrCodeValidationFailed, "validation failed")
	}

	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return errs.ValidationFailed(details)
}

// FindUsers returns every user with their roles, ordered by username
func (s *UserService) FindUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindUsersWithRoles(ctx)
}

// GetUser retrieves a user by id with roles loaded
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetUserWithRoles(ctx, id)
}

// GetUserByUsername retrieves a user by exact, case-sensitive username. This
// is the primitive both the uniqueness pre-check and bootstrap idempotency
// build on.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// checkUsernameAvailable enforces the uniqueness pre-check: the operation is
// rejected when another user already holds the username. Not atomic against
// concurrent writers; the storage constraint is the backstop and surfaces the
// same ErrUsernameTaken.
func (s *UserService) checkUsernameAvailable(ctx context.Context, username string, selfID uuid.UUID) error {
	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}

// assignRoles resolves the requested role ids and replaces the user's
// associations with exactly the resolved set. Unknown ids drop silently,
// matching the role lookup semantics.
func (s *UserService) assignRoles(ctx context.Context, userID uuid.UUID, roleIds []uuid.UUID) error {
	roles, err := s.roleService.FindRolesByIds(ctx, roleIds)
	if err != nil {
		return fmt.Errorf("failed to resolve roles: %w", err)
	}

	if err := s.repo.DeleteUserRoles(ctx, userID); err != nil {
		return fmt.Errorf("failed to detach roles: %w", err)
	}
	for _, r := range roles {
		if err := s.repo.CreateUserRole(ctx, userID, r.ID); err != nil {
			return fmt.Errorf("failed to assign role %s: %w", r.Name, err)
		}
	}
	return nil
}

// CreateUser creates a new user with the supplied role set and returns the
// persisted record with generated id and roles loaded
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if err := validate.Struct(params); err != nil {
		return User{}, validationError(err)
	}

	if err := s.checkUsernameAvailable(ctx, params.Username, uuid.Nil); err != nil {
		return User{}, err
	}

	rec, err := s.repo.CreateUser(ctx, UserRecord{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Age:       params.Age,
		Username:  params.Username,
		Password:  params.Password,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return User{}, err
		}
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if len(params.RoleIds) > 0 {
		slog.Info("Assigning roles to user", "userId", rec.ID, "roleIds", params.RoleIds)
		if err := s.assignRoles(ctx, rec.ID, params.RoleIds); err != nil {
			return User{}, err
		}
	}

	return s.repo.GetUserWithRoles(ctx, rec.ID)
}

// UpdateUser replaces all mutable fields and the full role set of an existing
// user. Roles missing from the new set are detached, not merged.
func (s *UserService) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	if err := validate.Struct(params); err != nil {
		return User{}, validationError(err)
	}

	if err := s.checkUsernameAvailable(ctx, params.Username, params.ID); err != nil {
		return User{}, err
	}

	_, err := s.repo.UpdateUser(ctx, UserRecord{
		ID:        params.ID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Age:       params.Age,
		Username:  params.Username,
		Password:  params.Password,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrUsernameTaken) {
			return User{}, err
		}
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.assignRoles(ctx, params.ID, params.RoleIds); err != nil {
		return User{}, err
	}

	return s.repo.GetUserWithRoles(ctx, params.ID)
}

// DeleteUser removes a user and its role associations
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	// Check if user exists
	if _, err := s.repo.GetUserWithRoles(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteUserRoles(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user roles: %w", err)
	}
	return s.repo.DeleteUser(ctx, id)
}
