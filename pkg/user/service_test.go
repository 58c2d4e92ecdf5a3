package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/tendant/simple-admin/pkg/errors"
	"github.com/tendant/simple-admin/pkg/role"
)

func setupService(t *testing.T) (*UserService, *role.RoleService) {
	roleRepo := role.NewInMemoryRoleRepository()
	roleService := role.NewRoleService(roleRepo)
	userRepo := NewInMemoryUserRepository(roleRepo)
	return NewUserService(userRepo, roleService), roleService
}

func validParams() CreateUserParams {
	return CreateUserParams{
		FirstName: "Bob",
		LastName:  "Ninten",
		Age:       40,
		Username:  "admin@mail.ru",
		Password:  "$2a$10$hashedhashedhashedhashed",
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateUserParams)
		wantErr bool
	}{
		{
			name:   "valid user",
			mutate: func(p *CreateUserParams) {},
		},
		{
			name:    "first name with digits",
			mutate:  func(p *CreateUserParams) { p.FirstName = "B0b" },
			wantErr: true,
		},
		{
			name:    "last name with spaces",
			mutate:  func(p *CreateUserParams) { p.LastName = "Van Ninten" },
			wantErr: true,
		},
		{
			name:    "age zero",
			mutate:  func(p *CreateUserParams) { p.Age = 0 },
			wantErr: true,
		},
		{
			name:    "age above range",
			mutate:  func(p *CreateUserParams) { p.Age = 151 },
			wantErr: true,
		},
		{
			name:    "username not an email",
			mutate:  func(p *CreateUserParams) { p.Username = "admin" },
			wantErr: true,
		},
		{
			name:    "missing password",
			mutate:  func(p *CreateUserParams) { p.Password = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupService(t)
			params := validParams()
			tt.mutate(&params)

			created, err := service.CreateUser(ctx, params)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsCode(err, errs.ErrCodeValidationFailed))
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.Equal(t, params.Username, created.Username)
			// Password is persisted exactly as given; hashing happens at the boundary
			assert.Equal(t, params.Password, created.Password)
			// Role set is never nil
			assert.NotNil(t, created.Roles)
			assert.Empty(t, created.Roles)
		})
	}
}

func TestCreateUserWithRoles(t *testing.T) {
	ctx := context.Background()
	service, roleService := setupService(t)

	admin, err := roleService.CreateRole(ctx, "ROLE_ADMIN")
	require.NoError(t, err)
	userRole, err := roleService.CreateRole(ctx, "ROLE_USER")
	require.NoError(t, err)

	params := validParams()
	params.RoleIds = []uuid.UUID{admin.ID, userRole.ID}

	created, err := service.CreateUser(ctx, params)
	require.NoError(t, err)
	require.Len(t, created.Roles, 2)
	assert.ElementsMatch(t, []string{"ROLE_ADMIN", "ROLE_USER"}, created.Authorities())
}

func TestCreateUserUnknownRoleIdsDropped(t *testing.T) {
	ctx := context.Background()
	service, roleService := setupService(t)

	admin, err := roleService.CreateRole(ctx, "ROLE_ADMIN")
	require.NoError(t, err)

	params := validParams()
	params.RoleIds = []uuid.UUID{admin.ID, uuid.New()}

	created, err := service.CreateUser(ctx, params)
	require.NoError(t, err)
	require.Len(t, created.Roles, 1)
	assert.Equal(t, "ROLE_ADMIN", created.Roles[0].Name)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	_, err := service.CreateUser(ctx, validParams())
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, validParams())
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// No second record was created
	users, err := service.FindUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// raceWindowRepository simulates the check-then-act race: the pre-check lookup
// sees nothing, so the storage-level uniqueness constraint is the backstop.
type raceWindowRepository struct {
	*InMemoryUserRepository
}

func (r *raceWindowRepository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return User{}, ErrUserNotFound
}

func TestCreateUserConflictFromStorageBackstop(t *testing.T) {
	ctx := context.Background()
	roleRepo := role.NewInMemoryRoleRepository()
	roleService := role.NewRoleService(roleRepo)
	repo := &raceWindowRepository{NewInMemoryUserRepository(roleRepo)}
	service := NewUserService(repo, roleService)

	_, err := service.CreateUser(ctx, validParams())
	require.NoError(t, err)

	// The pre-check misses, the store constraint catches, and the caller
	// still observes the exact same conflict error.
	_, err = service.CreateUser(ctx, validParams())
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserByUsername(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	created, err := service.CreateUser(ctx, validParams())
	require.NoError(t, err)

	found, err := service.GetUserByUsername(ctx, "admin@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Exact, case-sensitive match
	_, err = service.GetUserByUsername(ctx, "Admin@mail.ru")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserReplacesRoleSet(t *testing.T) {
	ctx := context.Background()
	service, roleService := setupService(t)

	r1, err := roleService.CreateRole(ctx, "ROLE_ADMIN")
	require.NoError(t, err)
	r2, err := roleService.CreateRole(ctx, "ROLE_USER")
	require.NoError(t, err)

	params := validParams()
	params.RoleIds = []uuid.UUID{r1.ID, r2.ID}
	created, err := service.CreateUser(ctx, params)
	require.NoError(t, err)
	require.Len(t, created.Roles, 2)

	updated, err := service.UpdateUser(ctx, UpdateUserParams{
		ID:        created.ID,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		Age:       created.Age,
		Username:  created.Username,
		Password:  created.Password,
		RoleIds:   []uuid.UUID{r2.ID},
	})
	require.NoError(t, err)

	// R1 is detached, not merely supplemented
	require.Len(t, updated.Roles, 1)
	assert.Equal(t, "ROLE_USER", updated.Roles[0].Name)
}

func TestUpdateUserIndependence(t *testing.T) {
	ctx := context.Background()
	service, roleService := setupService(t)

	r1, err := roleService.CreateRole(ctx, "ROLE_USER")
	require.NoError(t, err)

	first, err := service.CreateUser(ctx, validParams())
	require.NoError(t, err)

	otherParams := CreateUserParams{
		FirstName: "Dan",
		LastName:  "Danov",
		Age:       30,
		Username:  "user@mail.ru",
		Password:  "$2a$10$otherhashotherhashother",
		RoleIds:   []uuid.UUID{r1.ID},
	}
	other, err := service.CreateUser(ctx, otherParams)
	require.NoError(t, err)

	_, err = service.UpdateUser(ctx, UpdateUserParams{
		ID:        first.ID,
		FirstName: first.FirstName,
		LastName:  first.LastName,
		Age:       41,
		Username:  first.Username,
		Password:  first.Password,
	})
	require.NoError(t, err)

	// The other user's fields and roles are untouched
	unchanged, err := service.GetUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other, unchanged)
}

func TestUpdateUserUsernameConflict(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	first, err := service.CreateUser(ctx, validParams())
	require.NoError(t, err)

	otherParams := validParams()
	otherParams.Username = "user@mail.ru"
	other, err := service.CreateUser(ctx, otherParams)
	require.NoError(t, err)

	// Taking another user's username is a conflict
	_, err = service.UpdateUser(ctx, UpdateUserParams{
		ID:        other.ID,
		FirstName: other.FirstName,
		LastName:  other.LastName,
		Age:       other.Age,
		Username:  first.Username,
		Password:  other.Password,
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Keeping your own username is not
	_, err = service.UpdateUser(ctx, UpdateUserParams{
		ID:        other.ID,
		FirstName: other.FirstName,
		LastName:  other.LastName,
		Age:       other.Age,
		Username:  other.Username,
		Password:  other.Password,
	})
	assert.NoError(t, err)
}

func TestUpdateUserNotFound(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	params := UpdateUserParams{
		ID:        uuid.New(),
		FirstName: "Bob",
		LastName:  "Ninten",
		Age:       40,
		Username:  "admin@mail.ru",
		Password:  "$2a$10$hashedhashedhashedhashed",
	}
	_, err := service.UpdateUser(ctx, params)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	service, roleService := setupService(t)

	r1, err := roleService.CreateRole(ctx, "ROLE_ADMIN")
	require.NoError(t, err)

	params := validParams()
	params.RoleIds = []uuid.UUID{r1.ID}
	created, err := service.CreateUser(ctx, params)
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(ctx, created.ID))

	_, err = service.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// The role record itself survives the cascade
	_, err = roleService.GetRole(ctx, r1.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, service.DeleteUser(ctx, created.ID), ErrUserNotFound)
}

func TestAuthorities(t *testing.T) {
	u := User{
		Roles: []role.Role{
			{ID: uuid.New(), Name: "ROLE_ADMIN"},
			{ID: uuid.New(), Name: "ROLE_USER"},
		},
	}
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, u.Authorities())
	assert.True(t, u.HasRole("ROLE_ADMIN"))
	assert.False(t, u.HasRole("ROLE_AUDITOR"))

	empty := User{}
	assert.NotNil(t, empty.Authorities())
	assert.Empty(t, empty.Authorities())
}

func TestAuthUserFixedStatus(t *testing.T) {
	authUser := NewAuthUser(User{Username: "admin@mail.ru"})
	assert.Equal(t, AccountStatus{
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}, authUser.Status)
}
