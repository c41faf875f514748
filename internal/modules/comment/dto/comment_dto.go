package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	CommentText     string `json:"commentText" binding:"required,max=1000"`
	ParentCommentID *int64 `json:"parentCommentId" binding:"omitempty,min=1"`
}

type ListCommentsQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

type CommentUser struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	UsernameColor *string   `json:"usernameColor"`
}

type CommentResponse struct {
	ID                 int64       `json:"id"`
	CommentText        string      `json:"commentText"`
	ParentCommentID    *int64      `json:"parentCommentId"`
	CreatedAt          time.Time   `json:"createdAt"`
	User               CommentUser `json:"user"`
	LikeCount          int64       `json:"likeCount"`
	LikedByCurrentUser bool        `json:"likedByCurrentUser"`
}

type PaginatedCommentsResponse struct {
	Comments    []CommentResponse `json:"comments"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}
