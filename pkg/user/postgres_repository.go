package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-admin/pkg/role"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// PostgresUserRepository implements UserRepository backed by PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL-based user repository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		pool: pool,
	}
}

// usernameConflict translates a unique violation on the username constraint
// into ErrUsernameTaken so racing writers observe the same conflict error the
// service pre-check produces.
func usernameConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "users_username_key" {
		return ErrUsernameTaken
	}
	return err
}

// CreateUser inserts a new user row
func (r *PostgresUserRepository) CreateUser(ctx context.Context, rec UserRecord) (UserRecord, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, age, username, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, first_name, last_name, age, username, password`,
		rec.FirstName, rec.LastName, rec.Age, rec.Username, rec.Password).
		Scan(&rec.ID, &rec.FirstName, &rec.LastName, &rec.Age, &rec.Username, &rec.Password)
	if err != nil {
		return UserRecord{}, usernameConflict(err)
	}
	return rec, nil
}

// UpdateUser replaces all mutable fields of an existing user row
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, rec UserRecord) (UserRecord, error) {
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET first_name = $2, last_name = $3, age = $4, username = $5, password = $6
		 WHERE id = $1
		 RETURNING id, first_name, last_name, age, username, password`,
		rec.ID, rec.FirstName, rec.LastName, rec.Age, rec.Username, rec.Password).
		Scan(&rec.ID, &rec.FirstName, &rec.LastName, &rec.Age, &rec.Username, &rec.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, usernameConflict(err)
	}
	return rec, nil
}

// DeleteUser removes a user; users_roles rows cascade via foreign key
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

const userWithRolesQuery = `
SELECT u.id, u.first_name, u.last_name, u.age, u.username, u.password,
       r.id, r.name
FROM users u
LEFT JOIN users_roles ur ON ur.user_id = u.id
LEFT JOIN roles r ON r.id = ur.role_id
`

// scanUsersWithRoles collapses join rows into users with their role sets,
// preserving the row order of the first occurrence of each user.
func scanUsersWithRoles(rows pgx.Rows) ([]User, error) {
	defer rows.Close()

	users := []User{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var u User
		var roleID *uuid.UUID
		var roleName *string
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Age, &u.Username, &u.Password,
			&roleID, &roleName); err != nil {
			return nil, err
		}

		i, ok := index[u.ID]
		if !ok {
			u.Roles = []role.Role{}
			users = append(users, u)
			i = len(users) - 1
			index[u.ID] = i
		}
		if roleID != nil {
			users[i].Roles = append(users[i].Roles, role.Role{ID: *roleID, Name: *roleName})
		}
	}
	return users, rows.Err()
}

// GetUserWithRoles gets a user with their roles loaded
func (r *PostgresUserRepository) GetUserWithRoles(ctx context.Context, id uuid.UUID) (User, error) {
	rows, err := r.pool.Query(ctx, userWithRolesQuery+`WHERE u.id = $1 ORDER BY r.name`, id)
	if err != nil {
		return User{}, err
	}

	users, err := scanUsersWithRoles(rows)
	if err != nil {
		return User{}, err
	}
	if len(users) == 0 {
		return User{}, ErrUserNotFound
	}
	return users[0], nil
}

// GetUserByUsername gets a user by exact, case-sensitive username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	rows, err := r.pool.Query(ctx, userWithRolesQuery+`WHERE u.username = $1 ORDER BY r.name`, username)
	if err != nil {
		return User{}, err
	}

	users, err := scanUsersWithRoles(rows)
	if err != nil {
		return User{}, err
	}
	if len(users) == 0 {
		return User{}, ErrUserNotFound
	}
	return users[0], nil
}

// FindUsersWithRoles returns all users with their roles, ordered by username
func (r *PostgresUserRepository) FindUsersWithRoles(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, userWithRolesQuery+`ORDER BY u.username, r.name`)
	if err != nil {
		return nil, err
	}
	return scanUsersWithRoles(rows)
}

// CreateUserRole creates a user-role association
func (r *PostgresUserRepository) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID)
	return err
}

// DeleteUserRoles removes all role associations for a user
func (r *PostgresUserRepository) DeleteUserRoles(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users_roles WHERE user_id = $1`, userID)
	return err
}
