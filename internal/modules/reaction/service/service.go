package reaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	reactionRepo "kweezy.app/server/internal/modules/reaction/repository"
	"kweezy.app/server/pkg/apperror"
)

const countCacheTTL = 7 * 24 * time.Hour

type ReactionService interface {
	Toggle(ctx context.Context, segmentID int64, userID uuid.UUID, reactionType string) (added bool, err error)
	GetCounts(ctx context.Context, segmentID int64) (map[string]int64, error)
}

type reactionService struct {
	repo        reactionRepo.ReactionRepository
	novelRepo   novelRepo.NovelRepository
	redisClient *redis.Client
}

func NewReactionService(repo reactionRepo.ReactionRepository, novelRepo novelRepo.NovelRepository, redisClient *redis.Client) ReactionService {
	return &reactionService{
		repo:        repo,
		novelRepo:   novelRepo,
		redisClient: redisClient,
	}
}

func (s *reactionService) Toggle(ctx context.Context, segmentID int64, userID uuid.UUID, reactionType string) (bool, error) {
	reactionType = strings.TrimSpace(reactionType)
	if reactionType == "" {
		return false, apperror.Invalid("Reaction type is required.")
	}
	if utf8.RuneCountInString(reactionType) > 20 {
		return false, apperror.Invalid("Reaction type too long.")
	}

	if _, err := s.novelRepo.FindSegmentByID(ctx, segmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.NotFound("Segment not found.")
		}
		return false, err
	}

	reaction := &entity.Reaction{
		UserID:       userID,
		SegmentID:    segmentID,
		ReactionType: reactionType,
	}

	added, err := s.repo.Toggle(ctx, reaction)
	if err != nil {
		return false, err
	}

	// Keep the cached count hash in step; data is already consistent in the
	// DB, so a cache failure is only logged.
	if s.redisClient != nil {
		delta := int64(1)
		if !added {
			delta = -1
		}
		if err := s.redisClient.HIncrBy(ctx, countCacheKey(segmentID), reactionType, delta).Err(); err != nil {
			log.Printf("redis reaction count update failed: %v", err)
		}
	}

	return added, nil
}

func (s *reactionService) GetCounts(ctx context.Context, segmentID int64) (map[string]int64, error) {
	if _, err := s.novelRepo.FindSegmentByID(ctx, segmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Segment not found.")
		}
		return nil, err
	}

	// 1. Try the cached hash
	if s.redisClient != nil {
		val, err := s.redisClient.HGetAll(ctx, countCacheKey(segmentID)).Result()
		if err == nil && len(val) > 0 {
			counts := make(map[string]int64)
			for k, v := range val {
				count, _ := strconv.ParseInt(v, 10, 64)
				if count > 0 { // Don't return 0 or negative counts
					counts[k] = count
				}
			}
			return counts, nil
		}
	}

	// 2. Cache miss: rebuild from the DB
	counts, err := s.repo.GetReactionCounts(ctx, segmentID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		key := countCacheKey(segmentID)
		pipe := s.redisClient.Pipeline()
		pipe.Del(ctx, key)
		for reactionType, count := range counts {
			pipe.HSet(ctx, key, reactionType, count)
		}
		pipe.Expire(ctx, key, countCacheTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("redis reaction count rebuild failed: %v", err)
		}
	}

	if counts == nil {
		counts = make(map[string]int64)
	}
	return counts, nil
}

func countCacheKey(segmentID int64) string {
	return fmt.Sprintf("counts:segment:%d", segmentID)
}
