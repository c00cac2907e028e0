package crypto

// PasswordHasher derives and verifies password hashes for stored account
// credentials. It knows nothing about the network, the database, or users.
//
// Scheme:
//
//	encoded = Hash(password)             (registration)
//	ok      = Verify(password, encoded)  (login)
//
// The encoded form is self-describing (algorithm, parameters, salt, key),
// so tuning parameters can change between deployments without invalidating
// stored hashes.
type PasswordHasher interface {
	// Hash derives a one-way hash of password with a fresh random salt and
	// returns it in encoded text form, safe to store as-is.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash. A malformed
	// encoded value is an error, not a mismatch.
	Verify(password, encoded string) (bool, error)
}
