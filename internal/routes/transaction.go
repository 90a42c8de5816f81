package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/transaction"
)

// RegisterTransactionRoutes mounts transaction CRUD on an authenticated router group.
func RegisterTransactionRoutes(router fiber.Router, h *transaction.Handler) {
	group := router.Group("/transactions")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:transactionId", h.Get)
	group.Put("/:transactionId", h.Update)
	group.Delete("/:transactionId", h.Delete)
}
