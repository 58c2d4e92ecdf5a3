package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRoleRepository implements RoleRepository backed by PostgreSQL
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoleRepository creates a new PostgreSQL-based role repository
func NewPostgresRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		pool: pool,
	}
}

// FindRoles returns all roles ordered by name
func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRoleById retrieves a role by id
func (r *PostgresRoleRepository) GetRoleById(ctx context.Context, id uuid.UUID) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// GetRoleByName retrieves a role by exact name
func (r *PostgresRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// FindRolesByIds resolves a set of role ids; ids with no matching role are dropped
func (r *PostgresRoleRepository) FindRolesByIds(ctx context.Context, ids []uuid.UUID) ([]Role, error) {
	if len(ids) == 0 {
		return []Role{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM roles WHERE id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateRole inserts a new role and returns it with the generated id
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, name string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		return Role{}, err
	}
	return role, nil
}
