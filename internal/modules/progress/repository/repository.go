package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kweezy.app/server/internal/entity"
)

type ProgressRepository interface {
	Find(ctx context.Context, userID uuid.UUID, novelID int64) (*entity.ReadingProgress, error)
	Upsert(ctx context.Context, progress *entity.ReadingProgress) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Find(ctx context.Context, userID uuid.UUID, novelID int64) (*entity.ReadingProgress, error) {
	var rows []entity.ReadingProgress
	err := r.db.WithContext(ctx).
		Preload("Chapter", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "chapter_number")
		}).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// Upsert keeps exactly one row per (user, novel); a second call for the same
// pair overwrites the chapter and scroll offset in place.
func (r *progressRepository) Upsert(ctx context.Context, progress *entity.ReadingProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "novel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_read_chapter_id", "last_read_scroll_y", "updated_at"}),
		}).
		Create(progress).Error
}
