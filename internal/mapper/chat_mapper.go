package mapper

import (
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Chat mappers

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

// Message mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Content:   msg.Content,
		ImageUrl:  msg.ImageUrl,
		Role:      msg.Role,
		Prompt:    msg.Prompt,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Content:   msg.Content,
		ImageUrl:  msg.ImageUrl,
		Role:      msg.Role,
		Prompt:    msg.Prompt,
		CreatedAt: msg.CreatedAt,
	}
}

// DTO boundary: API timestamps are epoch milliseconds, the store keeps
// absolute time. Both directions convert here.

func (m *ChatMapper) ChatFromPayload(p *dto.ChatPayload) *entity.Chat {
	if p == nil {
		return nil
	}
	c := &entity.Chat{
		Id:        p.Id,
		UserId:    p.UserId,
		Title:     p.Title,
		UpdatedAt: MsToTime(p.UpdatedAt),
	}
	if p.CreatedAt > 0 {
		c.CreatedAt = MsToTime(p.CreatedAt)
	}
	if p.DeletedAt != nil {
		t := MsToTime(*p.DeletedAt)
		c.DeletedAt = &t
	}
	return c
}

func (m *ChatMapper) ChatToPayload(c *entity.Chat) *dto.ChatPayload {
	if c == nil {
		return nil
	}
	p := &dto.ChatPayload{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: TimeToMs(c.CreatedAt),
		UpdatedAt: TimeToMs(c.UpdatedAt),
	}
	if c.DeletedAt != nil {
		ms := TimeToMs(*c.DeletedAt)
		p.DeletedAt = &ms
	}
	return p
}

func (m *ChatMapper) MessageFromPayload(chatId string, p *dto.MessagePayload) *entity.Message {
	if p == nil {
		return nil
	}
	msg := &entity.Message{
		Id:       p.Id,
		ChatId:   chatId,
		Content:  p.Content,
		ImageUrl: p.ImageUrl,
		Role:     p.Role,
		Prompt:   p.Prompt,
	}
	if p.CreatedAt > 0 {
		msg.CreatedAt = MsToTime(p.CreatedAt)
	} else {
		msg.CreatedAt = time.Now()
	}
	return msg
}

func (m *ChatMapper) MessageToPayload(msg *entity.Message) *dto.MessagePayload {
	if msg == nil {
		return nil
	}
	return &dto.MessagePayload{
		Id:        msg.Id,
		Content:   msg.Content,
		ImageUrl:  msg.ImageUrl,
		Role:      msg.Role,
		Prompt:    msg.Prompt,
		CreatedAt: TimeToMs(msg.CreatedAt),
	}
}

func MsToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func TimeToMs(t time.Time) int64 {
	return t.UnixMilli()
}
