package model

import "time"

// Message rows are immutable; created_at carries the client's logical
// timestamp and is only defaulted when the client omits it.
type Message struct {
	Id        string    `gorm:"type:text;primaryKey"`
	ChatId    string    `gorm:"type:text;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	ImageUrl  *string   `gorm:"type:text"`
	Role      string    `gorm:"type:varchar(50);not null"`
	Prompt    *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (Message) TableName() string {
	return "messages"
}
