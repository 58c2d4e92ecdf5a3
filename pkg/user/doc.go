// Package user provides user account management for simple-admin.
//
// A user is an account record with a login identity (username, a unique email
// address), a hashed credential, and a set of roles loaded eagerly on every
// read. UserService owns the service-layer invariants:
//
//   - usernames are globally unique, enforced with a pre-check before
//     persistence and backed by the storage layer's unique constraint; both
//     paths surface ErrUsernameTaken
//   - passwords reach the store only as hasher output, never plaintext
//   - the role set is never nil and updates replace it wholesale
//
// Persistence goes through UserRepository with PostgreSQL and in-memory
// implementations.
package user
