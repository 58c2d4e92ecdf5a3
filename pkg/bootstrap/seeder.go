package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tendant/simple-admin/pkg/password"
	"github.com/tendant/simple-admin/pkg/role"
	"github.com/tendant/simple-admin/pkg/user"
	"github.com/tendant/simple-admin/pkg/utils"
)

// Baseline role names ensured on every start
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

const generatedPasswordLength = 16

// SeedConfig contains credentials for the two baseline accounts. Empty
// passwords are replaced with generated ones, logged once at creation.
type SeedConfig struct {
	AdminUsername string `env:"SEED_ADMIN_USERNAME" env-default:"admin@mail.ru"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" env-default:"admin"`
	UserUsername  string `env:"SEED_USER_USERNAME" env-default:"user@mail.ru"`
	UserPassword  string `env:"SEED_USER_PASSWORD" env-default:"user"`
}

// Seeder idempotently ensures the baseline roles and accounts exist
type Seeder struct {
	roleService *role.RoleService
	userService *user.UserService
	hasher      password.Hasher
	config      SeedConfig
}

// NewSeeder creates a new bootstrap seeder
func NewSeeder(roleService *role.RoleService, userService *user.UserService, hasher password.Hasher, config SeedConfig) *Seeder {
	return &Seeder{
		roleService: roleService,
		userService: userService,
		hasher:      hasher,
		config:      config,
	}
}

// Seed ensures ROLE_ADMIN and ROLE_USER exist and that the admin and ordinary
// baseline accounts exist, assigning the admin both roles and the ordinary
// account the user role. Repeated runs create nothing.
func (s *Seeder) Seed(ctx context.Context) error {
	adminRole, err := s.ensureRole(ctx, RoleAdmin)
	if err != nil {
		return err
	}
	userRole, err := s.ensureRole(ctx, RoleUser)
	if err != nil {
		return err
	}

	err = s.ensureUser(ctx, user.CreateUserParams{
		FirstName: "Bob",
		LastName:  "Ninten",
		Age:       40,
		Username:  s.config.AdminUsername,
	}, s.config.AdminPassword, adminRole, userRole)
	if err != nil {
		return err
	}

	return s.ensureUser(ctx, user.CreateUserParams{
		FirstName: "Dan",
		LastName:  "Danov",
		Age:       30,
		Username:  s.config.UserUsername,
	}, s.config.UserPassword, userRole)
}

// ensureRole looks the role up by name first so repeated runs never duplicate it
func (s *Seeder) ensureRole(ctx context.Context, name string) (role.Role, error) {
	existing, err := s.roleService.GetRoleByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, role.ErrRoleNotFound) {
		return role.Role{}, fmt.Errorf("failed to look up role %s: %w", name, err)
	}

	created, err := s.roleService.CreateRole(ctx, name)
	if err != nil {
		return role.Role{}, fmt.Errorf("failed to create role %s: %w", name, err)
	}
	slog.Info("Created baseline role", "name", name, "roleId", created.ID)
	return created, nil
}

// ensureUser creates the account when no user holds the username yet. The
// plaintext password is hashed here, once, before it reaches the service.
func (s *Seeder) ensureUser(ctx context.Context, params user.CreateUserParams, plaintext string, roles ...role.Role) error {
	_, err := s.userService.GetUserByUsername(ctx, params.Username)
	if err == nil {
		slog.Info("Baseline account already exists", "username", params.Username)
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to look up account %s: %w", params.Username, err)
	}

	if plaintext == "" {
		plaintext = utils.GenerateRandomString(generatedPasswordLength)
		slog.Info("Generated password for baseline account", "username", params.Username, "password", plaintext)
	}

	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", params.Username, err)
	}
	params.Password = hashed

	for _, r := range roles {
		params.RoleIds = append(params.RoleIds, r.ID)
	}

	created, err := s.userService.CreateUser(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to create baseline account %s: %w", params.Username, err)
	}
	slog.Info("Created baseline account", "username", created.Username, "userId", created.ID, "roles", created.Authorities())
	return nil
}
