package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/financia-ai/financia/internal/auth"
	"github.com/financia-ai/financia/internal/category"
	"github.com/financia-ai/financia/internal/config"
	"github.com/financia-ai/financia/internal/identity"
	"github.com/financia-ai/financia/internal/middleware"
	"github.com/financia-ai/financia/internal/portfolio"
	"github.com/financia-ai/financia/internal/transaction"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside dev, in-memory fallbacks are not acceptable.
	if !d.Cfg.IsDev() && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Repositories, services, handlers
	var userRepo identity.Repository
	var categoryRepo category.Repository
	var transactionRepo transaction.Repository
	var portfolioRepo portfolio.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
		categoryRepo = category.NewPostgresRepository(d.DB)
		transactionRepo = transaction.NewPostgresRepository(d.DB)
		portfolioRepo = portfolio.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
		categoryRepo = category.NewMemoryRepository()
		transactionRepo = transaction.NewMemoryRepository()
		portfolioRepo = portfolio.NewMemoryRepository()
	}

	identitySvc := identity.NewService(userRepo, d.Cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL)
	authSvc := auth.NewService(issuer)
	categorySvc := category.NewService(categoryRepo)
	transactionSvc := transaction.NewService(transactionRepo, categorySvc)
	portfolioSvc := portfolio.NewService(portfolioRepo)

	authHandler := auth.NewHandler(identitySvc, authSvc)
	categoryHandler := category.NewHandler(categorySvc)
	transactionHandler := transaction.NewHandler(transactionSvc)
	portfolioHandler := portfolio.NewHandler(portfolioSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, authHandler)

	// Protected routes
	protected := api.Group("", middleware.BearerAuth(issuer, userRepo))
	protected.Get("/auth/me", authHandler.Me)
	RegisterCategoryRoutes(protected, categoryHandler)
	RegisterTransactionRoutes(protected, transactionHandler)
	RegisterPortfolioRoutes(protected, portfolioHandler)

	return nil
}
