package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/handler"
	"github.com/noah-isme/timebank-api/internal/service"
)

type stubRewardService struct {
	rewards   []dto.RewardResponse
	err       error
	lastToken string
	lastItems []dto.RewardSeedItem
}

func (s *stubRewardService) ListRewards(context.Context) ([]dto.RewardResponse, error) {
	return s.rewards, s.err
}

func (s *stubRewardService) SeedRewards(_ context.Context, token string, items []dto.RewardSeedItem) (int64, error) {
	s.lastToken = token
	s.lastItems = items
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(items)), nil
}

func seedRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/seed/rewards", bytes.NewBufferString(`{"items":[{"name":"Mug","cost":25}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Seed-Token", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSeedHandlerRewards(t *testing.T) {
	svc := &stubRewardService{}
	app := fiber.New()
	handler.NewSeedHandler(svc, testLogger()).Register(app.Group("/api/v1/seed"))

	resp := seedRequest(t, app, "token")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "token", svc.lastToken)
	require.Equal(t, []dto.RewardSeedItem{{Name: "Mug", Cost: 25}}, svc.lastItems)
}

func TestSeedHandlerErrors(t *testing.T) {
	for _, err := range []error{service.ErrSeedDisabled, service.ErrSeedUnauthorized} {
		app := fiber.New()
		handler.NewSeedHandler(&stubRewardService{err: err}, testLogger()).Register(app.Group("/api/v1/seed"))

		resp := seedRequest(t, app, "bad")
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	}
}
