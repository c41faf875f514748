package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReadingProgress holds at most one row per (user, novel); it is only ever
// created or replaced by an explicit upsert, never appended.
type ReadingProgress struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_novel,priority:1" json:"userId"`
	User              User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	NovelID           int64     `gorm:"not null;uniqueIndex:idx_progress_user_novel,priority:2" json:"novelId"`
	Novel             Novel     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	LastReadChapterID int64     `gorm:"not null" json:"lastReadChapterId"`
	Chapter           Chapter   `gorm:"foreignKey:LastReadChapterID;constraint:OnDelete:CASCADE" json:"-"`
	LastReadScrollY   float64   `gorm:"not null;default:0" json:"lastReadScrollY"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *ReadingProgress) TableName() string {
	return "user_novel_progress"
}
