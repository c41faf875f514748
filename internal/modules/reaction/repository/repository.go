package repository

import (
	"context"

	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
)

type ReactionRepository interface {
	// Toggle flips existence of the (user, segment, type) row and reports
	// whether the reaction is now present.
	Toggle(ctx context.Context, reaction *entity.Reaction) (added bool, err error)
	GetReactionCounts(ctx context.Context, segmentID int64) (map[string]int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Toggle(ctx context.Context, reaction *entity.Reaction) (bool, error) {
	// Use Find with slice to avoid "record not found" log noise from GORM's First()
	var existing []entity.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND segment_id = ? AND reaction_type = ?",
			reaction.UserID, reaction.SegmentID, reaction.ReactionType).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return false, err
	}

	if len(existing) > 0 {
		// Same (user, segment, type) posted again -> toggle off
		if err := r.db.WithContext(ctx).Delete(&existing[0]).Error; err != nil {
			return false, err
		}
		return false, nil
	}

	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *reactionRepository) GetReactionCounts(ctx context.Context, segmentID int64) (map[string]int64, error) {
	type Result struct {
		ReactionType string
		Count        int64
	}
	var results []Result

	err := r.db.WithContext(ctx).
		Model(&entity.Reaction{}).
		Select("reaction_type, count(*) as count").
		Where("segment_id = ?", segmentID).
		Group("reaction_type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, res := range results {
		counts[res.ReactionType] = res.Count
	}
	return counts, nil
}
