package password

// Hasher defines the interface for one-way credential hashing.
//
// Hash transforms a plaintext secret into an opaque credential string suitable
// for storage. Verify checks a plaintext secret against a stored credential;
// it exists for the benefit of whatever authentication layer consumes the
// stored hashes, which is outside this module.
type Hasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored hash
	Verify(password, hashedPassword string) (bool, error)
}
