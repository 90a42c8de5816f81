package identity

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash at the given cost. Two calls on
// the same plaintext produce different hashes.
func HashPassword(plaintext string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), cost)
}

// CheckPassword reports whether plaintext matches the stored hash. A wrong
// password is a boolean outcome, not an error.
func CheckPassword(plaintext string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}
