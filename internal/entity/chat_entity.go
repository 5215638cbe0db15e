package entity

import "time"

// Chat is a single conversation owned by one user. UpdatedAt is the logical
// conflict-resolution timestamp supplied by the writer, not the row write time.
// A non-nil DeletedAt is a tombstone: the chat is logically deleted and stays
// deleted for the rest of its lifecycle.
type Chat struct {
	Id        string
	UserId    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (c *Chat) IsDeleted() bool {
	return c.DeletedAt != nil
}
