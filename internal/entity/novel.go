package entity

import "time"

type Novel struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	AuthorName    string    `gorm:"size:255" json:"authorName"`
	Description   string    `gorm:"type:text" json:"description"`
	CoverImageURL *string   `gorm:"type:text" json:"coverImageUrl"`
	Chapters      []Chapter `gorm:"constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (n *Novel) TableName() string {
	return "novels"
}

type Chapter struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	NovelID       int64     `gorm:"not null;uniqueIndex:idx_chapters_novel_number,priority:1" json:"novelId"`
	ChapterNumber int       `gorm:"not null;uniqueIndex:idx_chapters_novel_number,priority:2" json:"chapterNumber"`
	Title         string    `gorm:"size:255" json:"title"`
	Segments      []Segment `gorm:"constraint:OnDelete:CASCADE" json:"segments,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *Chapter) TableName() string {
	return "chapters"
}

// Segment is one unit of chapter text that comments and reactions attach to.
type Segment struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	ChapterID    int64  `gorm:"not null;uniqueIndex:idx_segments_chapter_index,priority:1" json:"chapterId"`
	SegmentIndex int    `gorm:"not null;uniqueIndex:idx_segments_chapter_index,priority:2" json:"segmentIndex"`
	SegmentType  string `gorm:"size:50;not null" json:"segmentType"`
	TextContent  string `gorm:"type:text;not null" json:"textContent"`
}

func (s *Segment) TableName() string {
	return "chapter_content_segments"
}
