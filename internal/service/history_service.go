package service

import (
	"context"
	"errors"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/storage"
	"ai-chat-be/pkg/events"

	"github.com/google/uuid"
)

var ErrChatNotFound = errors.New("chat not found")

type IHistoryService interface {
	CreateChat(ctx context.Context, userId string, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error)
	RenameChat(ctx context.Context, userId, chatId string, req *dto.RenameChatRequest) error
	// DeleteChat tombstones the chat and removes its messages in one
	// transaction.
	DeleteChat(ctx context.Context, userId, chatId string) error
	// GetChats lists the user's live chats, newest change first. A non-zero
	// sinceMs watermark limits the result to chats updated after it.
	GetChats(ctx context.Context, userId string, sinceMs int64) ([]*dto.ChatPayload, error)
	AddMessages(ctx context.Context, userId, chatId string, req *dto.AddMessagesRequest) error
	GetMessages(ctx context.Context, userId, chatId string) ([]*dto.MessagePayload, error)
}

type historyService struct {
	store     *storage.Storage
	publisher IPublisherService
	mapper    *mapper.ChatMapper
	log       logger.ILogger
}

func NewHistoryService(store *storage.Storage, publisher IPublisherService, log logger.ILogger) IHistoryService {
	return &historyService{
		store:     store,
		publisher: publisher,
		mapper:    mapper.NewChatMapper(),
		log:       log,
	}
}

func (s *historyService) CreateChat(ctx context.Context, userId string, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	if err := s.store.Guard(); err != nil {
		return nil, err
	}

	uow := s.store.Factory().NewUnitOfWork(ctx)
	now := time.Now()
	chat := entity.Chat{
		Id:        uuid.NewString(),
		UserId:    userId,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.ChatRepository().Create(ctx, &chat); err != nil {
		return nil, err
	}

	return &dto.CreateChatResponse{Id: chat.Id}, nil
}

// findOwnedLive loads a chat only if it belongs to userId and is not
// tombstoned.
func (s *historyService) findOwnedLive(ctx context.Context, userId, chatId string) (*entity.Chat, error) {
	uow := s.store.Factory().NewUnitOfWork(ctx)
	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ById{Id: chatId},
		specification.OwnedBy{UserId: userId},
		specification.NotDeleted{},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	return chat, nil
}

func (s *historyService) RenameChat(ctx context.Context, userId, chatId string, req *dto.RenameChatRequest) error {
	if err := s.store.Guard(); err != nil {
		return err
	}

	chat, err := s.findOwnedLive(ctx, userId, chatId)
	if err != nil {
		return err
	}

	chat.Title = req.Title
	chat.UpdatedAt = time.Now()

	uow := s.store.Factory().NewUnitOfWork(ctx)
	return uow.ChatRepository().Update(ctx, chat)
}

func (s *historyService) DeleteChat(ctx context.Context, userId, chatId string) error {
	if err := s.store.Guard(); err != nil {
		return err
	}

	chat, err := s.findOwnedLive(ctx, userId, chatId)
	if err != nil {
		return err
	}

	now := time.Now()
	chat.UpdatedAt = now
	chat.DeletedAt = &now

	uow := s.store.Factory().NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.MessageRepository().DeleteByChatIds(ctx, []string{chatId}); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.publisher.Publish(events.NewChatDeletedEvent(userId, chatId)); err != nil {
		s.log.Warn("history", "failed to publish delete event", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *historyService) GetChats(ctx context.Context, userId string, sinceMs int64) ([]*dto.ChatPayload, error) {
	if err := s.store.Guard(); err != nil {
		return nil, err
	}

	uow := s.store.Factory().NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.OwnedBy{UserId: userId},
		specification.NotDeleted{},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if sinceMs > 0 {
		specs = append(specs, specification.UpdatedAfter{Watermark: mapper.MsToTime(sinceMs)})
	}

	chats, err := uow.ChatRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatPayload, len(chats))
	for i, c := range chats {
		result[i] = s.mapper.ChatToPayload(c)
	}
	return result, nil
}

func (s *historyService) AddMessages(ctx context.Context, userId, chatId string, req *dto.AddMessagesRequest) error {
	if err := s.store.Guard(); err != nil {
		return err
	}
	if len(req.Messages) == 0 {
		return nil
	}

	if _, err := s.findOwnedLive(ctx, userId, chatId); err != nil {
		return err
	}

	messages := make([]*entity.Message, len(req.Messages))
	for i := range req.Messages {
		messages[i] = s.mapper.MessageFromPayload(chatId, &req.Messages[i])
		if messages[i].Id == "" {
			messages[i].Id = uuid.NewString()
		}
	}

	uow := s.store.Factory().NewUnitOfWork(ctx)
	return uow.MessageRepository().CreateAll(ctx, messages)
}

func (s *historyService) GetMessages(ctx context.Context, userId, chatId string) ([]*dto.MessagePayload, error) {
	if err := s.store.Guard(); err != nil {
		return nil, err
	}

	if _, err := s.findOwnedLive(ctx, userId, chatId); err != nil {
		return nil, err
	}

	uow := s.store.Factory().NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatId{ChatId: chatId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessagePayload, len(messages))
	for i, m := range messages {
		result[i] = s.mapper.MessageToPayload(m)
	}
	return result, nil
}
