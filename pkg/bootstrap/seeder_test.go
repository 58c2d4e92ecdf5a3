package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-admin/pkg/password"
	"github.com/tendant/simple-admin/pkg/role"
	"github.com/tendant/simple-admin/pkg/user"
	"golang.org/x/crypto/bcrypt"
)

func setupSeeder(t *testing.T, config SeedConfig) (*Seeder, *role.RoleService, *user.UserService) {
	roleRepo := role.NewInMemoryRoleRepository()
	roleService := role.NewRoleService(roleRepo)
	userService := user.NewUserService(user.NewInMemoryUserRepository(roleRepo), roleService)
	hasher := password.NewBcryptHasherWithCost(bcrypt.MinCost)
	return NewSeeder(roleService, userService, hasher, config), roleService, userService
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	seeder, roleService, userService := setupSeeder(t, SeedConfig{
		AdminUsername: "admin@mail.ru",
		AdminPassword: "admin",
		UserUsername:  "user@mail.ru",
		UserPassword:  "user",
	})

	require.NoError(t, seeder.Seed(ctx))

	roles, err := roleService.FindRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, RoleAdmin, roles[0].Name)
	assert.Equal(t, RoleUser, roles[1].Name)

	admin, err := userService.GetUserByUsername(ctx, "admin@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, "Bob", admin.FirstName)
	assert.Equal(t, "Ninten", admin.LastName)
	assert.Equal(t, int32(40), admin.Age)
	assert.ElementsMatch(t, []string{RoleAdmin, RoleUser}, admin.Authorities())

	ordinary, err := userService.GetUserByUsername(ctx, "user@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, "Dan", ordinary.FirstName)
	assert.Equal(t, "Danov", ordinary.LastName)
	assert.Equal(t, int32(30), ordinary.Age)
	assert.Equal(t, []string{RoleUser}, ordinary.Authorities())

	// Stored credentials are bcrypt hashes of the configured plaintext
	assert.NotEqual(t, "admin", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ordinary.Password), []byte("user")))
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	seeder, roleService, userService := setupSeeder(t, SeedConfig{
		AdminUsername: "admin@mail.ru",
		AdminPassword: "admin",
		UserUsername:  "user@mail.ru",
		UserPassword:  "user",
	})

	require.NoError(t, seeder.Seed(ctx))

	admin, err := userService.GetUserByUsername(ctx, "admin@mail.ru")
	require.NoError(t, err)

	require.NoError(t, seeder.Seed(ctx))

	roles, err := roleService.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	users, err := userService.FindUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// The existing account is left alone, hash included
	unchanged, err := userService.GetUserByUsername(ctx, "admin@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, unchanged.ID)
	assert.Equal(t, admin.Password, unchanged.Password)
}

func TestSeedGeneratesMissingPasswords(t *testing.T) {
	ctx := context.Background()
	seeder, _, userService := setupSeeder(t, SeedConfig{
		AdminUsername: "admin@mail.ru",
		UserUsername:  "user@mail.ru",
	})

	require.NoError(t, seeder.Seed(ctx))

	admin, err := userService.GetUserByUsername(ctx, "admin@mail.ru")
	require.NoError(t, err)
	assert.NotEmpty(t, admin.Password)

	// A generated password is never the empty string, so the stored value
	// must not verify against it
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("")))
}

func TestSeedPartialState(t *testing.T) {
	ctx := context.Background()
	seeder, roleService, userService := setupSeeder(t, SeedConfig{
		AdminUsername: "admin@mail.ru",
		AdminPassword: "admin",
		UserUsername:  "user@mail.ru",
		UserPassword:  "user",
	})

	// A pre-existing role is reused rather than duplicated
	existing, err := roleService.CreateRole(ctx, RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, seeder.Seed(ctx))

	roles, err := roleService.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	admin, err := userService.GetUserByUsername(ctx, "admin@mail.ru")
	require.NoError(t, err)
	assert.True(t, admin.HasRole(RoleAdmin))
	for _, r := range admin.Roles {
		if r.Name == RoleAdmin {
			assert.Equal(t, existing.ID, r.ID)
		}
	}
}
