package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "ops-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequireJWT(secret))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		uid, err := UIDFromLocals(c)
		if err != nil {
			return err
		}
		return c.SendString(uid)
	})
	return app
}

func call(t *testing.T, app *fiber.App, auth string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireJWT(t *testing.T) {
	app := newApp()

	good, err := SignToken(secret, "ops-1", time.Hour)
	require.NoError(t, err)
	expired, err := SignToken(secret, "ops-1", -time.Hour)
	require.NoError(t, err)
	wrongKey, err := SignToken("other", "ops-1", time.Hour)
	require.NoError(t, err)
	noUID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).SignedString([]byte(secret))
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"uid": "ops-1"}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name string
		auth string
		want int
	}{
		{"valid", "Bearer " + good, http.StatusOK},
		{"lower-case scheme", "bearer " + good, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"basic auth", "Basic b3BzOm9wcw==", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"no uid", "Bearer " + noUID, http.StatusUnauthorized},
		{"other alg", "Bearer " + hs512, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, app, tt.auth))
		})
	}
}

func TestSubjectFallback(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ops-2"}).SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, call(t, newApp(), "Bearer "+tok))
}
