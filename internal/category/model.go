package category

import "time"

// Category groups transactions. A nil UserID marks a system-provided category
// visible to every user but mutable by none.
type Category struct {
	ID          string
	Name        string
	Description string
	UserID      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input carries the client-settable category fields. The owner is always
// taken from the resolved identity, never from the payload.
type Input struct {
	Name        string
	Description string
}
