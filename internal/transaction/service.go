package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/money"
)

// CategoryChecker reports whether the owner may reference a category.
type CategoryChecker interface {
	AccessibleTo(ctx context.Context, ownerID, categoryID string) (bool, error)
}

// Service exposes ownership-scoped transaction operations. Every mutation
// verifies the caller owns the record first; absence and foreign ownership
// produce the same not-found error.
type Service struct {
	repo       Repository
	categories CategoryChecker
}

// NewService builds a transaction service.
func NewService(repo Repository, categories CategoryChecker) *Service {
	return &Service{repo: repo, categories: categories}
}

// List returns the owner's transactions, occurrence date descending.
func (s *Service) List(ctx context.Context, ownerID string, filter Filter) ([]Transaction, error) {
	if filter.Type != "" && !validType(filter.Type) {
		return nil, apperr.Validationf("invalid transaction type %q", filter.Type)
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, apperr.Validationf("invalid transaction status %q", filter.Status)
	}
	return s.repo.ListForOwner(ctx, ownerID, filter)
}

// Get fetches a transaction the caller owns.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Transaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if tx.UserID != ownerID {
		return Transaction{}, apperr.NotFoundf("transaction %s", id)
	}
	return tx, nil
}

// Create validates the input and stores a transaction owned by the caller.
// The owner is never taken from client input.
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (Transaction, error) {
	cents, err := money.ToCents(input.Amount)
	if err != nil {
		return Transaction{}, err
	}
	txType := input.Type
	if txType == "" {
		// Infer the type from the amount sign when the client omits it.
		txType = TypeIncome
		if cents < 0 {
			txType = TypeExpense
		}
	}
	if !validType(txType) {
		return Transaction{}, apperr.Validationf("invalid transaction type %q", txType)
	}
	status := input.Status
	if status == "" {
		status = StatusPending
	}
	if !validStatus(status) {
		return Transaction{}, apperr.Validationf("invalid transaction status %q", status)
	}
	occurredAt, err := parseDate(input.Date)
	if err != nil {
		return Transaction{}, err
	}
	categoryID, err := s.checkCategory(ctx, ownerID, input.CategoryID)
	if err != nil {
		return Transaction{}, err
	}

	now := time.Now().UTC()
	tx := Transaction{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		AmountCents: cents,
		Type:        txType,
		Status:      status,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(input.Description),
		Tags:        cleanTags(input.Tags),
		Notes:       strings.TrimSpace(input.Notes),
		OccurredAt:  occurredAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Update applies a partial update to a transaction the caller owns.
func (s *Service) Update(ctx context.Context, ownerID, id string, input UpdateInput) (Transaction, error) {
	tx, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Transaction{}, err
	}

	if input.Amount != nil {
		cents, err := money.ToCents(*input.Amount)
		if err != nil {
			return Transaction{}, err
		}
		tx.AmountCents = cents
	}
	if input.Type != nil {
		if !validType(*input.Type) {
			return Transaction{}, apperr.Validationf("invalid transaction type %q", *input.Type)
		}
		tx.Type = *input.Type
	}
	if input.Status != nil {
		if !validStatus(*input.Status) {
			return Transaction{}, apperr.Validationf("invalid transaction status %q", *input.Status)
		}
		tx.Status = *input.Status
	}
	if input.CategoryID != nil {
		categoryID, err := s.checkCategory(ctx, ownerID, input.CategoryID)
		if err != nil {
			return Transaction{}, err
		}
		tx.CategoryID = categoryID
	}
	if input.Description != nil {
		tx.Description = strings.TrimSpace(*input.Description)
	}
	if input.Tags != nil {
		tx.Tags = cleanTags(input.Tags)
	}
	if input.Notes != nil {
		tx.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Date != nil {
		occurredAt, err := parseDate(*input.Date)
		if err != nil {
			return Transaction{}, err
		}
		tx.OccurredAt = occurredAt
	}
	tx.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Delete permanently removes a transaction the caller owns.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// checkCategory resolves an optional category reference. An empty or nil
// reference clears the category; anything else must be accessible to the
// owner (their own or global) or the input is invalid.
func (s *Service) checkCategory(ctx context.Context, ownerID string, categoryID *string) (*string, error) {
	if categoryID == nil || strings.TrimSpace(*categoryID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*categoryID)
	ok, err := s.categories.AccessibleTo(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validationf("category %s does not exist", id)
	}
	return &id, nil
}

func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
