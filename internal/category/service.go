package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financia-ai/financia/internal/apperr"
)

// Service exposes ownership-scoped category operations. Absent records and
// records owned by someone else are indistinguishable to the caller.
type Service struct {
	repo Repository
}

// NewService builds a category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the owner's categories plus the global ones.
func (s *Service) List(ctx context.Context, ownerID string) ([]Category, error) {
	return s.repo.ListForOwner(ctx, ownerID)
}

// Get fetches a category readable by the owner: their own or a global one.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Category, error) {
	cat, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if cat.UserID != nil && *cat.UserID != ownerID {
		return Category{}, apperr.NotFoundf("category %s", id)
	}
	return cat, nil
}

// Create stores a new category owned by the caller.
func (s *Service) Create(ctx context.Context, ownerID string, input Input) (Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Category{}, apperr.Validationf("category name is required")
	}

	now := time.Now().UTC()
	cat := Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		UserID:      &ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return Category{}, err
	}
	return cat, nil
}

// Update replaces the mutable fields of a category the caller owns, so a PUT
// carries the full desired state and the name stays required. Global
// categories are readable but not mutable and fail the same way a foreign
// category does.
func (s *Service) Update(ctx context.Context, ownerID, id string, input Input) (Category, error) {
	cat, err := s.mutable(ctx, ownerID, id)
	if err != nil {
		return Category{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Category{}, apperr.Validationf("category name is required")
	}
	cat.Name = name
	cat.Description = strings.TrimSpace(input.Description)
	cat.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, cat); err != nil {
		return Category{}, err
	}
	return cat, nil
}

// Delete removes a category the caller owns. Deletion is permanent.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.mutable(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AccessibleTo reports whether the owner may reference the category on a
// transaction: it must exist and be theirs or global.
func (s *Service) AccessibleTo(ctx context.Context, ownerID, id string) (bool, error) {
	_, err := s.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) mutable(ctx context.Context, ownerID, id string) (Category, error) {
	cat, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if cat.UserID == nil || *cat.UserID != ownerID {
		return Category{}, apperr.NotFoundf("category %s", id)
	}
	return cat, nil
}
