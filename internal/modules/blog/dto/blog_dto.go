package dto

import "time"

type CreateBlogPostRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	Content    string `json:"content" binding:"required"`
	PublishNow bool   `json:"publishNow"`
}

type UpdateBlogPostRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=255"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type ListBlogQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=5" binding:"min=1,max=20"`
}

type BlogAuthor struct {
	Username string `json:"username"`
}

type BlogPostResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Author      BlogAuthor `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type PaginatedBlogResponse struct {
	Posts       []BlogPostResponse `json:"posts"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}
