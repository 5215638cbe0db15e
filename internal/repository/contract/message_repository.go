package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
)

type MessageRepository interface {
	// CreateAll is idempotent: rows whose id already exists are silently
	// skipped, never duplicated and never an error.
	CreateAll(ctx context.Context, messages []*entity.Message) error
	DeleteByChatIds(ctx context.Context, chatIds []string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
