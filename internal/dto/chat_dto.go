package dto

// ChatPayload is the wire shape of a chat record. Timestamps are epoch
// milliseconds; deleted_at present means the record is tombstoned.
type ChatPayload struct {
	Id        string `json:"id" validate:"required"`
	UserId    string `json:"user_id" validate:"required"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at" validate:"required"`
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}

type SyncChatsRequest struct {
	Chats []ChatPayload `json:"chats" validate:"dive"`
}

type CreateChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type CreateChatResponse struct {
	Id string `json:"id"`
}

type RenameChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type GetChatsRequest struct {
	// Since filters to chats updated after this epoch-ms watermark.
	Since int64 `query:"since"`
}

type MessagePayload struct {
	Id        string  `json:"id" validate:"required"`
	Content   string  `json:"content"`
	ImageUrl  *string `json:"image_url,omitempty"`
	Role      string  `json:"role" validate:"required"`
	Prompt    *string `json:"prompt,omitempty"`
	CreatedAt int64   `json:"created_at,omitempty"`
}

type AddMessagesRequest struct {
	Messages []MessagePayload `json:"messages" validate:"dive"`
}
