package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
)

// CommentWithMeta carries a comment together with its derived, viewer-aware
// fields: total like count and whether the requesting viewer liked it.
type CommentWithMeta struct {
	entity.Comment
	User          entity.User
	LikeCount     int64
	LikedByViewer bool
}

type CommentRepository interface {
	// FindAllBySegment returns every comment for the segment, never a
	// pre-paginated subset: the ranking engine's injection passes must
	// operate over the true tail of the list.
	FindAllBySegment(ctx context.Context, segmentID int64, viewerID *uuid.UUID) ([]CommentWithMeta, error)
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error

	FindLike(ctx context.Context, userID uuid.UUID, commentID int64) (*entity.CommentLike, error)
	CreateLike(ctx context.Context, like *entity.CommentLike) error
	DeleteLike(ctx context.Context, id int64) error
	CountLikes(ctx context.Context, commentID int64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindAllBySegment(ctx context.Context, segmentID int64, viewerID *uuid.UUID) ([]CommentWithMeta, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("segment_id = ?", segmentID).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		return []CommentWithMeta{}, nil
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	type likeCount struct {
		CommentID int64
		Count     int64
	}
	var counts []likeCount
	err = r.db.WithContext(ctx).
		Model(&entity.CommentLike{}).
		Select("comment_id, count(*) as count").
		Where("comment_id IN ?", ids).
		Group("comment_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	countByID := make(map[int64]int64, len(counts))
	for _, lc := range counts {
		countByID[lc.CommentID] = lc.Count
	}

	likedByID := make(map[int64]bool)
	if viewerID != nil {
		var likedIDs []int64
		err = r.db.WithContext(ctx).
			Model(&entity.CommentLike{}).
			Where("user_id = ? AND comment_id IN ?", *viewerID, ids).
			Pluck("comment_id", &likedIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			likedByID[id] = true
		}
	}

	result := make([]CommentWithMeta, 0, len(comments))
	for _, c := range comments {
		result = append(result, CommentWithMeta{
			Comment:       c,
			User:          c.User,
			LikeCount:     countByID[c.ID],
			LikedByViewer: likedByID[c.ID],
		})
	}
	return result, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindLike(ctx context.Context, userID uuid.UUID, commentID int64) (*entity.CommentLike, error) {
	var likes []entity.CommentLike
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Limit(1).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &likes[0], nil
}

func (r *commentRepository) CreateLike(ctx context.Context, like *entity.CommentLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *commentRepository) DeleteLike(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&entity.CommentLike{}, id).Error
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}
