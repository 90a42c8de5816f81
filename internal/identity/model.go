package identity

import (
	"strings"
	"time"
)

// User represents a registered account. PasswordHash holds a bcrypt hash from
// the moment of creation; the plaintext is never stored.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FullName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials is the input to registration and login.
type Credentials struct {
	Email    string
	Password string
	FullName string
}

// NormalizeEmail trims and lowercases an email so that registrations
// differing only in case resolve to the same identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
