package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/category"
)

// RegisterCategoryRoutes mounts category CRUD on an authenticated router group.
func RegisterCategoryRoutes(router fiber.Router, h *category.Handler) {
	group := router.Group("/categories")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:categoryId", h.Get)
	group.Put("/:categoryId", h.Update)
	group.Delete("/:categoryId", h.Delete)
}
