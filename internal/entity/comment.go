package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is immutable once created; there is no edit or delete endpoint.
// Rows disappear only through cascading segment/chapter/novel deletion.
type Comment struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	SegmentID       int64     `gorm:"not null;index" json:"segmentId"`
	Segment         Segment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User            User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CommentText     string    `gorm:"size:1000;not null" json:"commentText"`
	ParentCommentID *int64    `gorm:"index" json:"parentCommentId"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (c *Comment) TableName() string {
	return "comments"
}

type CommentLike struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_unique,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CommentID int64     `gorm:"not null;uniqueIndex:idx_comment_likes_unique,priority:2;index" json:"comment_id"`
	Comment   Comment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *CommentLike) TableName() string {
	return "comment_likes"
}
