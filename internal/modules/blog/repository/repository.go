package repository

import (
	"context"

	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
)

type BlogRepository interface {
	Create(ctx context.Context, post *entity.BlogPost) error
	Update(ctx context.Context, post *entity.BlogPost) error
	Delete(ctx context.Context, id int64) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.BlogPost, error)
	FindPublishedByID(ctx context.Context, id int64) (*entity.BlogPost, error)
	FindPublished(ctx context.Context, offset, limit int) ([]entity.BlogPost, int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *entity.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepository) Update(ctx context.Context, post *entity.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.BlogPost{}, id)
	return res.RowsAffected, res.Error
}

func (r *blogRepository) FindByID(ctx context.Context, id int64) (*entity.BlogPost, error) {
	var post entity.BlogPost
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) FindPublishedByID(ctx context.Context, id int64) (*entity.BlogPost, error) {
	var posts []entity.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND published_at IS NOT NULL", id).
		Limit(1).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &posts[0], nil
}

func (r *blogRepository) FindPublished(ctx context.Context, offset, limit int) ([]entity.BlogPost, int64, error) {
	var posts []entity.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("published_at IS NOT NULL").
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.WithContext(ctx).
		Model(&entity.BlogPost{}).
		Where("published_at IS NOT NULL").
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
