package transaction

import (
	"strings"
	"time"

	"github.com/financia-ai/financia/internal/apperr"
)

// Transaction types.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Transaction statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// Transaction is a single financial record owned by exactly one user.
// Amounts are signed minor units (cents) so arithmetic stays exact.
type Transaction struct {
	ID          string
	UserID      string
	AmountCents int64
	Type        string
	Status      string
	CategoryID  *string
	Description string
	Tags        []string
	Notes       string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput carries client-settable fields for a new transaction. The
// owner never comes from here; it is forced from the resolved identity.
type CreateInput struct {
	Amount      float64
	Type        string
	Status      string
	CategoryID  *string
	Description string
	Tags        []string
	Notes       string
	Date        string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Amount      *float64
	Type        *string
	Status      *string
	CategoryID  *string
	Description *string
	Tags        []string
	Notes       *string
	Date        *string
}

// Filter narrows a listing. Zero values mean no constraint.
type Filter struct {
	Type       string
	Status     string
	CategoryID string
	From       *time.Time
	To         *time.Time
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperr.Validationf("date must be a valid %s date", dateLayout)
	}
	return parsed.UTC(), nil
}

func validType(value string) bool {
	switch value {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	default:
		return false
	}
}

func validStatus(value string) bool {
	switch value {
	case StatusPending, StatusCompleted, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}
