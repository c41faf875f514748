package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is a unique (user, segment, type) row. A user may hold one reaction
// of each type per segment simultaneously; posting the same triple again
// removes it. The type set {heart, fire, surprise, cry, angry} is a UI
// convention, not a server constraint.
type Reaction struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_unique,priority:1" json:"user_id"`
	User         User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SegmentID    int64     `gorm:"not null;uniqueIndex:idx_reactions_unique,priority:2;index" json:"segment_id"`
	Segment      Segment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReactionType string    `gorm:"size:20;not null;uniqueIndex:idx_reactions_unique,priority:3" json:"reaction_type"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) TableName() string {
	return "reactions"
}
