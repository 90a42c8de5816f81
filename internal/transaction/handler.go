package transaction

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/middleware"
	"github.com/financia-ai/financia/internal/money"
)

// Handler exposes transaction HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Amount      float64  `json:"amount"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	CategoryID  *string  `json:"category_id"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
	Date        string   `json:"date"`
}

type updateRequest struct {
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Status      *string  `json:"status"`
	CategoryID  *string  `json:"category_id"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Notes       *string  `json:"notes"`
	Date        *string  `json:"date"`
}

type transactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CategoryID  *string   `json:"category_id"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(tx Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Amount:      money.FromCents(tx.AmountCents),
		Type:        tx.Type,
		Status:      tx.Status,
		CategoryID:  tx.CategoryID,
		Description: tx.Description,
		Tags:        tx.Tags,
		Notes:       tx.Notes,
		Date:        tx.OccurredAt.Format(dateLayout),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

// List returns the caller's transactions, optionally filtered by query params.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}

	filter := Filter{
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		CategoryID: c.Query("category_id"),
	}
	if from := c.Query("start_date"); from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return err
		}
		filter.From = &parsed
	}
	if to := c.Query("end_date"); to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return err
		}
		filter.To = &parsed
	}

	txs, err := h.service.List(c.UserContext(), user.ID, filter)
	if err != nil {
		return err
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Get returns one transaction the caller owns.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	tx, err := h.service.Get(c.UserContext(), user.ID, c.Params("transactionId"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toResponse(tx))
}

// Create stores a transaction owned by the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	tx, err := h.service.Create(c.UserContext(), user.ID, CreateInput{
		Amount:      req.Amount,
		Type:        req.Type,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Tags:        req.Tags,
		Notes:       req.Notes,
		Date:        req.Date,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toResponse(tx))
}

// Update applies a partial update to a transaction the caller owns.
func (h *Handler) Update(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	tx, err := h.service.Update(c.UserContext(), user.ID, c.Params("transactionId"), UpdateInput{
		Amount:      req.Amount,
		Type:        req.Type,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Tags:        req.Tags,
		Notes:       req.Notes,
		Date:        req.Date,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toResponse(tx))
}

// Delete permanently removes a transaction the caller owns.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	if err := h.service.Delete(c.UserContext(), user.ID, c.Params("transactionId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
