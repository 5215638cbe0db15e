package specification

import (
	"time"

	"gorm.io/gorm"
)

// OwnedBy scopes the query to one user's records
type OwnedBy struct {
	UserId string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// UpdatedAfter is the sync watermark filter
type UpdatedAfter struct {
	Watermark time.Time
}

func (s UpdatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("updated_at > ?", s.Watermark)
}

// ByChatId filters messages by their owning chat
type ByChatId struct {
	ChatId string
}

func (s ByChatId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatId)
}
