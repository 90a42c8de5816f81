package middleware

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/identity"
)

// stubVerifier resolves a fixed token string to a fixed subject.
type stubVerifier struct {
	token   string
	subject string
}

func (v stubVerifier) Verify(token string) (string, error) {
	if token != v.token {
		return "", apperr.Unauthorizedf("invalid token")
	}
	return v.subject, nil
}

func setupAuthApp(t *testing.T, verifier TokenVerifier, repo identity.Repository) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/me", BearerAuth(verifier, repo), func(c *fiber.Ctx) error {
		user, ok := UserFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "no user in context")
		}
		return c.JSON(fiber.Map{"id": user.ID})
	})
	return app
}

func seedUser(t *testing.T, repo identity.Repository, active bool) identity.User {
	t.Helper()
	user := identity.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@example.com",
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestBearerAuthResolvesUser(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := seedUser(t, repo, true)
	app := setupAuthApp(t, stubVerifier{token: "good", subject: user.ID}, repo)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer good")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestBearerAuthCaseInsensitiveScheme(t *testing.T) {
	repo := identity.NewMemoryRepository()
	user := seedUser(t, repo, true)
	app := setupAuthApp(t, stubVerifier{token: "good", subject: user.ID}, repo)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "bearer good")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// brokenRepository simulates a store outage on every lookup.
type brokenRepository struct {
	identity.Repository
}

func (brokenRepository) FindByID(context.Context, string) (identity.User, error) {
	return identity.User{}, fmt.Errorf("connection refused")
}

func TestBearerAuthPropagatesStoreFailures(t *testing.T) {
	app := setupAuthApp(t, stubVerifier{token: "good", subject: uuid.NewString()}, brokenRepository{})

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer good")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected store outage to surface as 500, got %d", resp.StatusCode)
	}
}

func TestBearerAuthRejections(t *testing.T) {
	repo := identity.NewMemoryRepository()
	inactive := seedUser(t, repo, false)

	cases := []struct {
		name     string
		verifier TokenVerifier
		header   string
	}{
		{name: "missing header", verifier: stubVerifier{token: "good", subject: inactive.ID}, header: ""},
		{name: "wrong scheme", verifier: stubVerifier{token: "good", subject: inactive.ID}, header: "Basic good"},
		{name: "invalid token", verifier: stubVerifier{token: "good", subject: inactive.ID}, header: "Bearer bad"},
		{name: "unknown subject", verifier: stubVerifier{token: "good", subject: uuid.NewString()}, header: "Bearer good"},
		{name: "inactive account", verifier: stubVerifier{token: "good", subject: inactive.ID}, header: "Bearer good"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := setupAuthApp(t, tc.verifier, repo)
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.StatusCode)
			}
		})
	}
}
