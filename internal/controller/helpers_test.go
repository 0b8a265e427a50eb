package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJwtSecret = "controller-test-secret"

// noopPersistence satisfies the persistence contract without any storage;
// controller tests only exercise the HTTP surface.
type noopPersistence struct{}

func (noopPersistence) Load(context.Context) (*entity.Snapshot, string, error) {
	return entity.EmptySnapshot(), "", nil
}
func (noopPersistence) Save(constant.EntityKind)                           {}
func (noopPersistence) SaveImmediate(context.Context, constant.EntityKind) {}
func (noopPersistence) FlushAll()                                          {}
func (noopPersistence) TierAAvailable() bool                               { return false }

func testApp(t *testing.T, register func(fiber.Router)) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJwtSecret)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	register(app.Group("/api"))
	return app
}

func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
	}).SignedString([]byte(testJwtSecret))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
