package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/handler"
	"github.com/noah-isme/timebank-api/internal/service"
)

type stubPointsService struct {
	balance     dto.BalanceResponse
	redemption  dto.RedemptionResponse
	err         error
	lastEmail   string
	lastRequest dto.RedeemRequest
}

func (s *stubPointsService) Balance(_ context.Context, email string) (dto.BalanceResponse, error) {
	s.lastEmail = email
	return s.balance, s.err
}

func (s *stubPointsService) Redeem(_ context.Context, email string, req dto.RedeemRequest) (dto.RedemptionResponse, error) {
	s.lastEmail = email
	s.lastRequest = req
	return s.redemption, s.err
}

func (s *stubPointsService) ListRedemptions(_ context.Context, email string) ([]dto.RedemptionResponse, error) {
	s.lastEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return []dto.RedemptionResponse{s.redemption}, nil
}

func newPointsApp(svc service.PointsService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/mentor", asPrincipal("ana@example.com", "mentor"))
	handler.NewPointsHandler(svc, testLogger()).Register(group)
	return app
}

func TestPointsHandlerBalance(t *testing.T) {
	svc := &stubPointsService{balance: dto.BalanceResponse{Earned: 50, Redeemed: 30, Balance: 20}}
	resp := doJSON(t, newPointsApp(svc), http.MethodGet, "/api/v1/mentor/points", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readEnvelope(t, resp)
	require.True(t, body.Success)

	var balance dto.BalanceResponse
	require.NoError(t, json.Unmarshal(body.Data, &balance))
	require.EqualValues(t, 20, balance.Balance)
	require.Equal(t, "ana@example.com", svc.lastEmail)
}

func TestPointsHandlerRedeemCreated(t *testing.T) {
	remaining := int64(20)
	svc := &stubPointsService{redemption: dto.RedemptionResponse{ID: 1, RewardID: 3, RewardName: "Coffee", PointsSpent: 30, Balance: &remaining, CreatedAt: time.Now()}}
	resp := doJSON(t, newPointsApp(svc), http.MethodPost, "/api/v1/mentor/redemptions", map[string]interface{}{"reward_id": 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.EqualValues(t, 3, svc.lastRequest.RewardID)
}

func TestPointsHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrInsufficientPoints, fiber.StatusUnprocessableEntity},
		{service.ErrRewardNotFound, fiber.StatusNotFound},
		{service.ErrPrincipalNotFound, fiber.StatusNotFound},
		{fmt.Errorf("%w: reward_id is required", service.ErrValidation), fiber.StatusBadRequest},
		{&service.StorageError{Op: "redeem reward", Err: errors.New("connection reset")}, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			svc := &stubPointsService{err: tc.err}
			resp := doJSON(t, newPointsApp(svc), http.MethodPost, "/api/v1/mentor/redemptions", map[string]interface{}{"reward_id": 3})
			require.Equal(t, tc.status, resp.StatusCode)

			body := readEnvelope(t, resp)
			require.False(t, body.Success)
			require.NotEmpty(t, body.Message)
		})
	}
}

func TestPointsHandlerRejectsMalformedBody(t *testing.T) {
	app := newPointsApp(&stubPointsService{})
	req := doJSON(t, app, http.MethodPost, "/api/v1/mentor/redemptions", "not-an-object")
	require.Equal(t, fiber.StatusBadRequest, req.StatusCode)
}
