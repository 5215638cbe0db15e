package model

import "time"

// Chat does not use gorm.DeletedAt: tombstoned rows must stay visible to the
// sync snapshot queries, and the tombstone timestamp comes from the client.
type Chat struct {
	Id        string     `gorm:"type:text;primaryKey"`
	UserId    string     `gorm:"type:text;not null;index"`
	Title     string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"not null;index;autoUpdateTime:false"`
	DeletedAt *time.Time `gorm:"index"`
}

func (Chat) TableName() string {
	return "chats"
}
