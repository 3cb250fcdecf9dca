package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "leaderboard:top"
const leaderboardCacheTTL = time.Minute

type PointsService struct {
	PointsRepo *repository.PointsRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
}

func NewPointsService(pointsRepo *repository.PointsRepository, userRepo *repository.UserRepository, rdb *redis.Client) *PointsService {
	return &PointsService{
		PointsRepo: pointsRepo,
		UserRepo:   userRepo,
		Redis:      rdb,
	}
}

// Award adds points to the user's ledger and cumulative XP. The ledger row is
// keyed by reference, so retrying the same award (e.g. a replayed quiz
// submission) inserts nothing and the XP is applied exactly once.
func (s *PointsService) Award(userID uint, points int, reason, reference string) error {
	tx := &model.PointsTransaction{
		UserID:    userID,
		Points:    points,
		Reason:    reason,
		Reference: reference,
	}
	if err := s.PointsRepo.Create(tx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return s.UserRepo.AddXP(userID, points)
}

type LeaderboardEntry struct {
	Rank int    `json:"rank"`
	User string `json:"user"`
	XP   int    `json:"xp"`
}

// GetLeaderboard serves the top-N from a short-lived redis cache, falling back
// to the database when the cache is cold or redis is unavailable.
func (s *PointsService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank: i + 1,
			User: user.Name,
			XP:   user.XP,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
			}
		}
	}

	return entries, nil
}

type PointsSummary struct {
	TotalXP int                       `json:"totalXp"`
	Recent  []model.PointsTransaction `json:"recent"`
}

func (s *PointsService) GetSummary(userID uint) (*PointsSummary, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.PointsRepo.ListByUser(userID, 20)
	if err != nil {
		return nil, err
	}
	return &PointsSummary{TotalXP: user.XP, Recent: recent}, nil
}
