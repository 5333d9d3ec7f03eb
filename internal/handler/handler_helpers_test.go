package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timebank-api/internal/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// asPrincipal stands in for JWTProtected in handler tests.
func asPrincipal(email, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserEmail, email)
		c.Locals(middleware.LocalUserRole, role)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var payload envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}
