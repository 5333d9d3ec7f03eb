package dto

import (
	"time"

	"github.com/noah-isme/timebank-api/internal/models"
)

// BalanceResponse breaks a mentor's balance into its two ledgers.
type BalanceResponse struct {
	Earned   int64 `json:"earned"`
	Redeemed int64 `json:"redeemed"`
	Balance  int64 `json:"balance"`
}

// RedeemRequest selects the reward to redeem.
type RedeemRequest struct {
	RewardID uint `json:"reward_id" validate:"required,gt=0"`
}

// RedemptionResponse describes a written redemption.
type RedemptionResponse struct {
	ID          uint      `json:"id"`
	RewardID    uint      `json:"reward_id"`
	RewardName  string    `json:"reward_name,omitempty"`
	PointsSpent int       `json:"points_spent"`
	Balance     *int64    `json:"balance,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRedemptionResponse maps the model into its response payload.
func NewRedemptionResponse(redemption models.Redemption, rewardName string) RedemptionResponse {
	return RedemptionResponse{
		ID:          redemption.ID,
		RewardID:    redemption.RewardID,
		RewardName:  rewardName,
		PointsSpent: redemption.PointsSpent,
		CreatedAt:   redemption.CreatedAt,
	}
}
