package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertProgressRequest struct {
	LastReadChapterID int64    `json:"lastReadChapterId" binding:"required,min=1"`
	LastReadScrollY   *float64 `json:"lastReadScrollY" binding:"required,gte=0"`
}

type ChapterRef struct {
	ChapterNumber int `json:"chapterNumber"`
}

type ProgressResponse struct {
	UserID            uuid.UUID  `json:"userId"`
	NovelID           int64      `json:"novelId"`
	LastReadChapterID int64      `json:"lastReadChapterId"`
	LastReadScrollY   float64    `json:"lastReadScrollY"`
	Chapter           ChapterRef `json:"chapter"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
