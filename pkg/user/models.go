package user

import (
	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/role"
)

// User represents an account record: login identity, hashed credential, and
// the set of roles it holds. Roles are always loaded eagerly with the user so
// any authorization decision sees the latest committed set.
type User struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Age       int32       `json:"age"`
	Username  string      `json:"username"`
	Password  string      `json:"-"`
	Roles     []role.Role `json:"roles"`
}

// Authorities returns the permission tokens derived from the user's role set.
// It is computed from the owned roles at call time and never cached, so it
// always reflects the current role set.
func (u User) Authorities() []string {
	authorities := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		authorities = append(authorities, r.Name)
	}
	return authorities
}

// HasRole reports whether the user holds a role with the given name
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AccountStatus describes the capability flags an authentication layer
// consumes. No code path ever changes them, so they are a fixed value type
// attached when an authentication view is built, not persisted entity fields.
type AccountStatus struct {
	Enabled               bool `json:"enabled"`
	AccountNonExpired     bool `json:"account_non_expired"`
	AccountNonLocked      bool `json:"account_non_locked"`
	CredentialsNonExpired bool `json:"credentials_non_expired"`
}

// DefaultAccountStatus returns the fixed capability descriptor: enabled,
// never expired, never locked.
func DefaultAccountStatus() AccountStatus {
	return AccountStatus{
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
}

// AuthUser is the authentication view of a user: the account record plus the
// fixed capability descriptor.
type AuthUser struct {
	User
	Status AccountStatus `json:"status"`
}

// NewAuthUser builds the authentication view for a user
func NewAuthUser(u User) AuthUser {
	return AuthUser{
		User:   u,
		Status: DefaultAccountStatus(),
	}
}

// CreateUserParams contains parameters for creating a new user. Password must
// already be hashed by the caller boundary; the service persists it as given.
type CreateUserParams struct {
	FirstName string      `json:"first_name" validate:"required,alpha"`
	LastName  string      `json:"last_name" validate:"required,alpha"`
	Age       int32       `json:"age" validate:"required,gte=1,lte=150"`
	Username  string      `json:"username" validate:"required,email"`
	Password  string      `json:"password" validate:"required"`
	RoleIds   []uuid.UUID `json:"role_ids"`
}

// UpdateUserParams contains parameters for updating a user. All mutable fields
// and the full role set are replaced; roles not listed are detached.
type UpdateUserParams struct {
	ID        uuid.UUID   `json:"id" validate:"required"`
	FirstName string      `json:"first_name" validate:"required,alpha"`
	LastName  string      `json:"last_name" validate:"required,alpha"`
	Age       int32       `json:"age" validate:"required,gte=1,lte=150"`
	Username  string      `json:"username" validate:"required,email"`
	Password  string      `json:"password" validate:"required"`
	RoleIds   []uuid.UUID `json:"role_ids"`
}
