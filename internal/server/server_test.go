package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/config"
	"github.com/financia-ai/financia/internal/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppName:        "financia-test",
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "test-secret",
		AccessTokenTTL: 30 * time.Minute,
		BcryptCost:     4,
	}
}

// newTestServer builds a server backed by in-memory stores.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(testConfig(), nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := srv.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var decoded map[string]any
	if resp.Header.Get(fiber.HeaderContentType) != "" {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	resp.Body.Close()
	return resp, decoded
}

func doJSONList(t *testing.T, srv *Server, path, token string) (*http.Response, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := srv.app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}

	var decoded []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	return resp, decoded
}

func registerAndLogin(t *testing.T, srv *Server, email, password string) (string, string) {
	t.Helper()
	resp, user := doJSON(t, srv, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email": email, "password": password, "full_name": "Test User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, user)
	}
	userID, _ := user["id"].(string)
	if userID == "" {
		t.Fatalf("register: expected an id, got %v", user)
	}

	resp, login := doJSON(t, srv, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", resp.StatusCode, login)
	}
	token, _ := login["access_token"].(string)
	if token == "" {
		t.Fatalf("login: expected an access token, got %v", login)
	}
	if tokenType, _ := login["token_type"].(string); tokenType != "bearer" {
		t.Fatalf("login: expected token_type bearer, got %q", tokenType)
	}

	return userID, token
}

func TestRegisterLoginCreateList(t *testing.T) {
	srv := newTestServer(t)
	userID, token := registerAndLogin(t, srv, "u@x.com", "Secret1!")

	resp, created := doJSON(t, srv, fiber.MethodPost, "/api/v1/transactions/", token, fiber.Map{
		"amount": -42.50, "description": "coffee", "date": "2024-01-05",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transaction: expected 201, got %d (%v)", resp.StatusCode, created)
	}
	if owner, _ := created["user_id"].(string); owner != userID {
		t.Fatalf("expected owner %s, got %v", userID, created["user_id"])
	}
	if amount, _ := created["amount"].(float64); amount != -42.50 {
		t.Fatalf("expected amount -42.50, got %v", created["amount"])
	}

	resp, list := doJSONList(t, srv, "/api/v1/transactions/", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one transaction, got %d", len(list))
	}
	if list[0]["id"] != created["id"] {
		t.Fatalf("expected listed id %v, got %v", created["id"], list[0]["id"])
	}
	if list[0]["description"] != "coffee" {
		t.Fatalf("expected description coffee, got %v", list[0]["description"])
	}
}

func TestSpoofedOwnerIgnored(t *testing.T) {
	srv := newTestServer(t)
	userID, token := registerAndLogin(t, srv, "owner@x.com", "Secret1!")

	resp, created := doJSON(t, srv, fiber.MethodPost, "/api/v1/transactions/", token, fiber.Map{
		"amount": 10.0, "date": "2024-01-05", "user_id": "someone-else",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%v)", resp.StatusCode, created)
	}
	if owner, _ := created["user_id"].(string); owner != userID {
		t.Fatalf("expected spoofed owner to be overridden with %s, got %v", userID, created["user_id"])
	}
}

func TestDuplicateRegisterConflicts(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "dup@x.com", "Secret1!")

	// Case variation resolves to the same identity.
	resp, body := doJSON(t, srv, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email": "DUP@x.com", "password": "Secret1!",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%v)", resp.StatusCode, body)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "real@x.com", "Secret1!")

	resp, unknown := doJSON(t, srv, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "ghost@x.com", "password": "Secret1!",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", resp.StatusCode)
	}

	resp, wrong := doJSON(t, srv, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "real@x.com", "password": "WrongPass1!",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", resp.StatusCode)
	}

	if unknown["error"] != wrong["error"] {
		t.Fatalf("expected identical error bodies, got %v and %v", unknown["error"], wrong["error"])
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/transactions/",
		"/api/v1/categories/",
		"/api/v1/portfolio/assets/",
		"/api/v1/portfolio/debts/",
	} {
		resp, _ := doJSON(t, srv, fiber.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, resp.StatusCode)
		}
	}
}

func TestForeignTransactionIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	_, tokenA := registerAndLogin(t, srv, "a@x.com", "Secret1!")
	_, tokenB := registerAndLogin(t, srv, "b@x.com", "Secret1!")

	resp, created := doJSON(t, srv, fiber.MethodPost, "/api/v1/transactions/", tokenA, fiber.Map{
		"amount": 5.0, "date": "2024-01-05",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	txID, _ := created["id"].(string)

	resp, _ = doJSON(t, srv, fiber.MethodGet, "/api/v1/transactions/"+txID, tokenB, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign get: expected 404, got %d", resp.StatusCode)
	}

	resp, list := doJSONList(t, srv, "/api/v1/transactions/", tokenB)
	if resp.StatusCode != http.StatusOK || len(list) != 0 {
		t.Fatalf("foreign list: expected empty 200, got %d with %d items", resp.StatusCode, len(list))
	}
}

func TestValidationMapsTo422(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerAndLogin(t, srv, "v@x.com", "Secret1!")

	resp, body := doJSON(t, srv, fiber.MethodPost, "/api/v1/transactions/", token, fiber.Map{
		"amount": 1.999, "date": "2024-01-05",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%v)", resp.StatusCode, body)
	}

	resp, body = doJSON(t, srv, fiber.MethodPost, "/api/v1/transactions/", token, fiber.Map{
		"amount": 1.0, "date": "not-a-date",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad date, got %d (%v)", resp.StatusCode, body)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	srv := newTestServer(t)
	userID, token := registerAndLogin(t, srv, "me@x.com", "Secret1!")

	resp, me := doJSON(t, srv, fiber.MethodGet, "/api/v1/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if me["id"] != userID || me["email"] != "me@x.com" {
		t.Fatalf("unexpected user payload: %v", me)
	}
	if _, leaked := me["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestPortfolioAnalysis(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerAndLogin(t, srv, "worth@x.com", "Secret1!")

	resp, _ := doJSON(t, srv, fiber.MethodPost, "/api/v1/portfolio/assets/", token, fiber.Map{
		"name": "Savings", "type": "cash", "value": 1500.00,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create asset: expected 201, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, fiber.MethodPost, "/api/v1/portfolio/debts/", token, fiber.Map{
		"name": "Visa", "type": "credit_card", "original_amount": 2000.00,
		"current_balance": 500.00, "minimum_payment": 50.00, "interest_rate": 19.99,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create debt: expected 201, got %d", resp.StatusCode)
	}

	resp, nw := doJSON(t, srv, fiber.MethodGet, "/api/v1/portfolio/analysis/net-worth", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("net worth: expected 200, got %d (%v)", resp.StatusCode, nw)
	}
	if nw["total_assets"] != 1500.00 || nw["total_debts"] != 500.00 || nw["net_worth"] != 1000.00 {
		t.Fatalf("unexpected net worth payload: %v", nw)
	}

	resp, overview := doJSON(t, srv, fiber.MethodGet, "/api/v1/portfolio/analysis/debt-overview", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("debt overview: expected 200, got %d (%v)", resp.StatusCode, overview)
	}
	if overview["total_debt"] != 500.00 || overview["monthly_payments"] != 50.00 {
		t.Fatalf("unexpected debt overview payload: %v", overview)
	}
}

func TestHealthzMemoryMode(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, fiber.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}
}
