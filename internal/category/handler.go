package category

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/middleware"
)

// Handler exposes category HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a category HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      *string   `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(cat Category) categoryResponse {
	return categoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		UserID:      cat.UserID,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// List returns the caller's categories plus global ones.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	cats, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toResponse(cat))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Get returns one category accessible to the caller.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	cat, err := h.service.Get(c.UserContext(), user.ID, c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toResponse(cat))
}

// Create stores a category owned by the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	cat, err := h.service.Create(c.UserContext(), user.ID, Input{Name: req.Name, Description: req.Description})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toResponse(cat))
}

// Update rewrites a category owned by the caller.
func (h *Handler) Update(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	cat, err := h.service.Update(c.UserContext(), user.ID, c.Params("categoryId"), Input{Name: req.Name, Description: req.Description})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toResponse(cat))
}

// Delete removes a category owned by the caller.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	if err := h.service.Delete(c.UserContext(), user.ID, c.Params("categoryId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
