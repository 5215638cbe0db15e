package entity

import "time"

// Message belongs to exactly one chat and is immutable once created.
type Message struct {
	Id        string
	ChatId    string
	Content   string
	ImageUrl  *string
	Role      string
	Prompt    *string
	CreatedAt time.Time
}
