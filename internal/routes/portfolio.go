package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/portfolio"
)

// RegisterPortfolioRoutes mounts asset and debt CRUD on an authenticated router group.
func RegisterPortfolioRoutes(router fiber.Router, h *portfolio.Handler) {
	assets := router.Group("/portfolio/assets")
	assets.Get("/", h.ListAssets)
	assets.Post("/", h.CreateAsset)
	assets.Get("/:assetId", h.GetAsset)
	assets.Put("/:assetId", h.UpdateAsset)
	assets.Delete("/:assetId", h.DeleteAsset)

	analysis := router.Group("/portfolio/analysis")
	analysis.Get("/net-worth", h.NetWorth)
	analysis.Get("/debt-overview", h.DebtOverview)

	debts := router.Group("/portfolio/debts")
	debts.Get("/", h.ListDebts)
	debts.Post("/", h.CreateDebt)
	debts.Get("/:debtId", h.GetDebt)
	debts.Put("/:debtId", h.UpdateDebt)
	debts.Delete("/:debtId", h.DeleteDebt)
}
