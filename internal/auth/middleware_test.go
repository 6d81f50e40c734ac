package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newGuardedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/private", Middleware(NewJWTVerifier(secret)), func(c *fiber.Ctx) error {
		return c.SendString(Identity(c))
	})
	return app
}

func TestMiddlewareMissingCredential(t *testing.T) {
	app := newGuardedApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMiddlewareInvalidCredential(t *testing.T) {
	app := newGuardedApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "wrong", "user-1", time.Minute))
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMiddlewareBearerToken(t *testing.T) {
	app := newGuardedApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "user-1", time.Minute))
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMiddlewareRawToken(t *testing.T) {
	app := newGuardedApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", signTestToken(t, "secret", "user-1", time.Minute))
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for schemeless header, got %d", resp.StatusCode)
	}
}
