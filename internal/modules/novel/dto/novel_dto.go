package dto

import (
	"time"

	progressDto "kweezy.app/server/internal/modules/progress/dto"
)

type NovelListItem struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"authorName"`
	Description   string    `json:"description"`
	CoverImageURL *string   `json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ChapterListItem struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ChapterNumber int    `json:"chapterNumber"`
}

type NovelDetailResponse struct {
	ID            int64                         `json:"id"`
	Title         string                        `json:"title"`
	AuthorName    string                        `json:"authorName"`
	Description   string                        `json:"description"`
	CoverImageURL *string                       `json:"coverImageUrl"`
	Chapters      []ChapterListItem             `json:"chapters"`
	UserProgress  *progressDto.ProgressResponse `json:"userProgress"`
}

type SegmentResponse struct {
	ID           int64  `json:"id"`
	SegmentIndex int    `json:"segmentIndex"`
	SegmentType  string `json:"segmentType"`
	TextContent  string `json:"textContent"`
}
