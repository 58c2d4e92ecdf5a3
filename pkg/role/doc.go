// Package role provides role management for simple-admin.
//
// Roles are named permission groupings assigned to users. A role's name is its
// external identity; roles are created once (during bootstrap or through the
// admin API) and are effectively immutable afterward.
//
// The package follows the repository pattern: RoleService holds the domain
// logic, RoleRepository abstracts persistence, and PostgreSQL and in-memory
// implementations are provided.
package role
