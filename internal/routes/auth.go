package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/auth"
)

// RegisterAuthRoutes mounts the public registration and login endpoints.
// /auth/me lives on the protected group instead.
func RegisterAuthRoutes(router fiber.Router, h *auth.Handler) {
	group := router.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
}
