package models

import (
	"time"
)

type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Thumbnail string    `gorm:"type:varchar(500)" json:"thumbnail"`
	CreatorID string    `gorm:"type:varchar(36);index" json:"creator_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Creator is resolved best-effort: a post whose author no longer
	// exists renders with a blank author rather than failing.
	Creator User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
