package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financia-ai/financia/internal/apperr"
)

const minPasswordLength = 8

// Service manages the account lifecycle: registration and credential checks.
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates an identity service hashing passwords at the given cost.
func NewService(repo Repository, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// Register validates the credentials, hashes the password and stores a new
// user. The email is normalized before the uniqueness check so registrations
// differing only in case conflict.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	email := NormalizeEmail(creds.Email)
	if err := validateEmail(email); err != nil {
		return User{}, err
	}
	if len(creds.Password) < minPasswordLength {
		return User{}, apperr.Validationf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(creds.FullName),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies email and password. Unknown email and wrong password
// return the same unauthorized error so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, apperr.Unauthorizedf("invalid email or password")
		}
		return User{}, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return User{}, apperr.Unauthorizedf("invalid email or password")
	}

	return user, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperr.Validationf("invalid email %q", email)
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.ContainsAny(email, " \t") {
		return apperr.Validationf("invalid email %q", email)
	}
	return nil
}
