// Package service defines the collaborator contracts the authentication flow depends on.
// Implementations live under internal/infra.
package service

// PasswordHasher hashes passwords once at registration and verifies them at login.
// Plaintext is never stored or returned.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash.
	Check(password, hash string) bool
}
