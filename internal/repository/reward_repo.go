package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/timebank-api/internal/models"
)

// RewardRepository reads and seeds the rewards catalog.
type RewardRepository interface {
	List(ctx context.Context) ([]models.Reward, error)
	GetByID(ctx context.Context, id uint) (models.Reward, error)
	UpsertBatch(ctx context.Context, items []models.Reward) (int64, error)
}

type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository constructs the rewards catalog repository.
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) List(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.db.WithContext(ctx).Order("cost ASC").Order("id ASC").Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) GetByID(ctx context.Context, id uint) (models.Reward, error) {
	var reward models.Reward
	if err := r.db.WithContext(ctx).First(&reward, id).Error; err != nil {
		return models.Reward{}, err
	}
	return reward, nil
}

func (r *rewardRepository) UpsertBatch(ctx context.Context, items []models.Reward) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"cost", "updated_at"}),
	}).Create(&items)

	return tx.RowsAffected, tx.Error
}
