package models

import (
	"time"
)

// Session is the server-side record behind the opaque cookie token.
// The payload is written by login, destroyed by logout, and never
// updated in between.
type Session struct {
	Token     string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	UserID    string    `gorm:"not null;type:varchar(36)" json:"user_id"`
	Username  string    `gorm:"not null;type:varchar(255)" json:"username"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}
