package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/timebank-api/internal/models"
)

var (
	// ErrMentorNotFound indicates the redeeming mentor does not exist.
	ErrMentorNotFound = errors.New("mentor not found")
	// ErrRewardNotFound indicates the requested reward is not in the catalog.
	ErrRewardNotFound = errors.New("reward not found")
	// ErrInsufficientBalance indicates the reward costs more than the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// RedeemResult reports the outcome of a redemption attempt. Reward and
// Balance are populated for rejected attempts as well.
type RedeemResult struct {
	Redemption models.Redemption
	Reward     models.Reward
	Balance    int64
}

// RedemptionRepository persists redemptions and computes balances.
type RedemptionRepository interface {
	Redeem(ctx context.Context, mentorEmail string, rewardID uint) (RedeemResult, error)
	SumSpent(ctx context.Context, mentorEmail string) (int64, error)
	ListByMentor(ctx context.Context, mentorEmail string) ([]models.Redemption, error)
}

type redemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository constructs the redemption repository.
func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{db: db}
}

// Redeem checks the balance and writes the redemption inside one transaction.
// The mentor row is locked first so concurrent redemptions for the same mentor
// queue behind each other and each sees the previous one's debit.
func (r *redemptionRepository) Redeem(ctx context.Context, mentorEmail string, rewardID uint) (RedeemResult, error) {
	var result RedeemResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mentor models.Mentor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", mentorEmail).
			First(&mentor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMentorNotFound
			}
			return err
		}

		if err := tx.First(&result.Reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		earned, err := sumEarned(tx, mentorEmail)
		if err != nil {
			return err
		}
		spent, err := sumRedeemed(tx, mentorEmail)
		if err != nil {
			return err
		}

		result.Balance = earned - spent
		cost := int64(result.Reward.Cost)
		if result.Balance < cost {
			return ErrInsufficientBalance
		}

		result.Redemption = models.Redemption{
			MentorEmail: mentorEmail,
			RewardID:    result.Reward.ID,
			PointsSpent: result.Reward.Cost,
		}
		if err := tx.Create(&result.Redemption).Error; err != nil {
			return err
		}

		result.Balance -= cost
		return nil
	})

	return result, err
}

func (r *redemptionRepository) SumSpent(ctx context.Context, mentorEmail string) (int64, error) {
	return sumRedeemed(r.db.WithContext(ctx), mentorEmail)
}

func (r *redemptionRepository) ListByMentor(ctx context.Context, mentorEmail string) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.db.WithContext(ctx).
		Where("mentor_email = ?", mentorEmail).
		Order("created_at DESC").
		Order("id DESC").
		Find(&redemptions).Error
	return redemptions, err
}
