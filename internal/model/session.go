package model

import "time"

// Session is an opaque server-issued token resolving the acting user.
// Tokens are valid for seven days from creation.
type Session struct {
	Token     string    `gorm:"primarykey" json:"token"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
