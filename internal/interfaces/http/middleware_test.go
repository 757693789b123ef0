package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/emart-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/emart-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "emart-api-test"
	testExpMin    = 60
)

type identity struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// buildIdentityApp aplicación mínima que devuelve la identidad resuelta por el middleware.
func buildIdentityApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.IdentityMiddleware(secret, testIssuer), func(c *fiber.Ctx) error {
		return c.JSON(identity{UserID: apphttp.GetUserID(c), Role: apphttp.GetRole(c)})
	})
	return app
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func whoami(t *testing.T, app *fiber.App, target, authHeader string) identity {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el middleware nunca bloquea")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out identity
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// IdentityMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestIdentity_TokenValido(t *testing.T) {
	app := buildIdentityApp(testJWTSecret)
	got := whoami(t, app, "/whoami?userId=U9", bearer(t, "U1", "ADMIN"))
	assert.Equal(t, identity{UserID: "U1", Role: "ADMIN"}, got, "el token tiene prioridad sobre userId")
}

func TestIdentity_TokenInvalidoCaeEnQuery(t *testing.T) {
	app := buildIdentityApp(testJWTSecret)
	got := whoami(t, app, "/whoami?userId=U9", "Bearer basura")
	assert.Equal(t, identity{UserID: "U9"}, got)
}

func TestIdentity_SinSecretIgnoraToken(t *testing.T) {
	app := buildIdentityApp("")
	got := whoami(t, app, "/whoami?userId=U3", bearer(t, "U1", "ADMIN"))
	assert.Equal(t, identity{UserID: "U3"}, got)
}

func TestIdentity_Anonimo(t *testing.T) {
	app := buildIdentityApp(testJWTSecret)
	got := whoami(t, app, "/whoami", "")
	assert.Empty(t, got.UserID)
}

func TestIdentity_EsquemaDistintoDeBearer(t *testing.T) {
	app := buildIdentityApp(testJWTSecret)
	tok, err := pkgjwt.Generate(testJWTSecret, "U1", "ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)
	got := whoami(t, app, "/whoami", "Basic "+tok)
	assert.Empty(t, got.UserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestIDMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestID_GeneraYRespeta(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestIDMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		id, _ := c.Locals(apphttp.LocalRequestID).(string)
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	generated := resp.Header.Get(fiber.HeaderXRequestID)
	assert.Len(t, generated, 36, "UUID generado")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, generated, string(body))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))
}
