package repository

import (
	"context"

	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
)

type NovelRepository interface {
	Create(ctx context.Context, novel *entity.Novel) error
	Update(ctx context.Context, novel *entity.Novel) error
	Delete(ctx context.Context, id int64) (int64, error)
	FindAll(ctx context.Context) ([]entity.Novel, error)
	FindAllWithChapters(ctx context.Context) ([]entity.Novel, error)
	ListTitles(ctx context.Context) ([]entity.Novel, error)
	FindByID(ctx context.Context, id int64) (*entity.Novel, error)
	FindByIDWithChapters(ctx context.Context, id int64) (*entity.Novel, error)
	FindByTitle(ctx context.Context, title string) (*entity.Novel, error)

	CreateChapter(ctx context.Context, chapter *entity.Chapter) error
	DeleteChapter(ctx context.Context, id int64) (int64, error)
	FindChapterByID(ctx context.Context, id int64) (*entity.Chapter, error)
	FindChapterByNumber(ctx context.Context, novelID int64, number int) (*entity.Chapter, error)

	FindSegments(ctx context.Context, chapterID int64) ([]entity.Segment, error)
	FindSegmentByID(ctx context.Context, id int64) (*entity.Segment, error)
	ReplaceSegments(ctx context.Context, chapterID int64, segments []entity.Segment) error
}

type novelRepository struct {
	db *gorm.DB
}

func NewNovelRepository(db *gorm.DB) NovelRepository {
	return &novelRepository{db: db}
}

func (r *novelRepository) Create(ctx context.Context, novel *entity.Novel) error {
	return r.db.WithContext(ctx).Create(novel).Error
}

func (r *novelRepository) Update(ctx context.Context, novel *entity.Novel) error {
	return r.db.WithContext(ctx).Save(novel).Error
}

func (r *novelRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Novel{}, id)
	return res.RowsAffected, res.Error
}

func (r *novelRepository) FindAll(ctx context.Context) ([]entity.Novel, error) {
	var novels []entity.Novel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&novels).Error
	return novels, err
}

func (r *novelRepository) FindAllWithChapters(ctx context.Context) ([]entity.Novel, error) {
	var novels []entity.Novel
	err := r.db.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_number ASC")
		}).
		Order("title ASC").
		Find(&novels).Error
	return novels, err
}

func (r *novelRepository) ListTitles(ctx context.Context) ([]entity.Novel, error) {
	var novels []entity.Novel
	err := r.db.WithContext(ctx).
		Select("id", "title").
		Order("title ASC").
		Find(&novels).Error
	return novels, err
}

func (r *novelRepository) FindByID(ctx context.Context, id int64) (*entity.Novel, error) {
	var novel entity.Novel
	if err := r.db.WithContext(ctx).First(&novel, id).Error; err != nil {
		return nil, err
	}
	return &novel, nil
}

func (r *novelRepository) FindByIDWithChapters(ctx context.Context, id int64) (*entity.Novel, error) {
	var novel entity.Novel
	err := r.db.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "novel_id", "chapter_number", "title").
				Order("chapter_number ASC")
		}).
		First(&novel, id).Error
	if err != nil {
		return nil, err
	}
	return &novel, nil
}

func (r *novelRepository) FindByTitle(ctx context.Context, title string) (*entity.Novel, error) {
	// Find with slice avoids GORM's "record not found" log noise
	var novels []entity.Novel
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		Limit(1).
		Find(&novels).Error
	if err != nil {
		return nil, err
	}
	if len(novels) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &novels[0], nil
}

func (r *novelRepository) CreateChapter(ctx context.Context, chapter *entity.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *novelRepository) DeleteChapter(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Chapter{}, id)
	return res.RowsAffected, res.Error
}

func (r *novelRepository) FindChapterByID(ctx context.Context, id int64) (*entity.Chapter, error) {
	var chapter entity.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *novelRepository) FindChapterByNumber(ctx context.Context, novelID int64, number int) (*entity.Chapter, error) {
	var chapters []entity.Chapter
	err := r.db.WithContext(ctx).
		Where("novel_id = ? AND chapter_number = ?", novelID, number).
		Limit(1).
		Find(&chapters).Error
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &chapters[0], nil
}

func (r *novelRepository) FindSegments(ctx context.Context, chapterID int64) ([]entity.Segment, error) {
	var segments []entity.Segment
	err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("segment_index ASC").
		Find(&segments).Error
	return segments, err
}

func (r *novelRepository) FindSegmentByID(ctx context.Context, id int64) (*entity.Segment, error) {
	var segment entity.Segment
	if err := r.db.WithContext(ctx).First(&segment, id).Error; err != nil {
		return nil, err
	}
	return &segment, nil
}

// ReplaceSegments swaps a chapter's full segment set in one transaction.
// Delete-then-insert: both succeed or neither, so there is never a window
// with zero segments visible and never an appended duplicate set.
func (r *novelRepository) ReplaceSegments(ctx context.Context, chapterID int64, segments []entity.Segment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&entity.Segment{}).Error; err != nil {
			return err
		}
		for i := range segments {
			segments[i].ID = 0
			segments[i].ChapterID = chapterID
		}
		return tx.Create(&segments).Error
	})
}
