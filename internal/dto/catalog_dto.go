package dto

import "github.com/noah-isme/timebank-api/internal/models"

// RewardResponse is a catalog entry.
type RewardResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// RewardSeedItem is one catalog row supplied to the seed endpoint.
type RewardSeedItem struct {
	Name string `json:"name" validate:"required,max=255"`
	Cost int    `json:"cost" validate:"required,gt=0"`
}

// LeaderboardEntry is one ranked mentor. Rank is assigned at read time.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	TotalHours  int64  `json:"total_hours"`
	TotalPoints int64  `json:"total_points"`
}

// NewRewardResponses maps catalog rows into responses.
func NewRewardResponses(rewards []models.Reward) []RewardResponse {
	responses := make([]RewardResponse, 0, len(rewards))
	for _, reward := range rewards {
		responses = append(responses, RewardResponse{ID: reward.ID, Name: reward.Name, Cost: reward.Cost})
	}
	return responses
}

// NewLeaderboard ranks aggregate rows in the order they were returned.
func NewLeaderboard(rows []models.LeaderboardRow) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(rows))
	for idx, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:        idx + 1,
			Name:        row.Name,
			TotalHours:  row.TotalHours,
			TotalPoints: row.TotalPoints,
		})
	}
	return entries
}
