package entity

import (
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null" json:"authorId"`
	Author      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *BlogPost) TableName() string {
	return "blog_posts"
}
