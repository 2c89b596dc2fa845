package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing time against brute-force resistance. 12 keeps
// a single hash in the low hundreds of milliseconds on current hardware.
const bcryptCost = 12

// PasswordHasher wraps bcrypt so the rest of the module never touches the
// hash format directly.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher at the module's standard cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash derives a salted bcrypt hash from the plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
// Any comparison failure, malformed hash included, reads as a mismatch.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
