package service

import (
	"context"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/storage"
	"ai-chat-be/pkg/events"
)

type ISyncService interface {
	// SyncChats merges the client's chat records for one user into the
	// server state. The snapshot is read once and the whole batch is
	// evaluated against it, so concurrent syncs for the same user race;
	// callers are expected to serialize syncs per user.
	SyncChats(ctx context.Context, userId string, chats []dto.ChatPayload) error
}

// OwnershipViolation is the per-record diagnostic for a chat submitted under
// the wrong user. It never aborts the batch.
type OwnershipViolation struct {
	ChatId string
	UserId string
}

// SyncPlan is the outcome of reconciling one client batch against a server
// snapshot: chats to write and chat ids whose messages must be removed.
type SyncPlan struct {
	Upserts       []*entity.Chat
	DeleteChatIds []string
	Violations    []OwnershipViolation
}

// BuildSyncPlan evaluates each client record independently against the
// snapshot:
//   - a record for another user is reported as a violation and skipped
//   - a chat unknown to the server is always written; if the client already
//     tombstoned it, its messages are scheduled for deletion too
//   - a live server chat is overwritten by a client tombstone, or by a
//     strictly newer client record (ties favor the server)
//   - a tombstoned server chat is never touched again
func BuildSyncPlan(userId string, incoming []*entity.Chat, snapshot []*entity.Chat) SyncPlan {
	serverChats := make(map[string]*entity.Chat, len(snapshot))
	for _, c := range snapshot {
		serverChats[c.Id] = c
	}

	var plan SyncPlan
	for _, chat := range incoming {
		if chat.UserId != userId {
			plan.Violations = append(plan.Violations, OwnershipViolation{
				ChatId: chat.Id,
				UserId: chat.UserId,
			})
			continue
		}

		server, exists := serverChats[chat.Id]
		if !exists {
			plan.Upserts = append(plan.Upserts, chat)
			if chat.IsDeleted() {
				plan.DeleteChatIds = append(plan.DeleteChatIds, chat.Id)
			}
			continue
		}

		if server.IsDeleted() {
			// Deletion is terminal; the record is never revived.
			continue
		}

		if chat.IsDeleted() {
			plan.Upserts = append(plan.Upserts, chat)
			plan.DeleteChatIds = append(plan.DeleteChatIds, chat.Id)
			continue
		}

		if chat.UpdatedAt.After(server.UpdatedAt) {
			plan.Upserts = append(plan.Upserts, chat)
		}
	}

	return plan
}

type syncService struct {
	store     *storage.Storage
	syncState *memory.SyncStateRepository
	publisher IPublisherService
	mapper    *mapper.ChatMapper
	log       logger.ILogger
}

func NewSyncService(
	store *storage.Storage,
	syncState *memory.SyncStateRepository,
	publisher IPublisherService,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		store:     store,
		syncState: syncState,
		publisher: publisher,
		mapper:    mapper.NewChatMapper(),
		log:       log,
	}
}

func (s *syncService) SyncChats(ctx context.Context, userId string, chats []dto.ChatPayload) error {
	if err := s.store.Guard(); err != nil {
		return err
	}
	if len(chats) == 0 {
		return nil
	}

	incoming := make([]*entity.Chat, len(chats))
	for i := range chats {
		incoming[i] = s.mapper.ChatFromPayload(&chats[i])
	}

	uow := s.store.Factory().NewUnitOfWork(ctx)

	ids := make([]string, len(incoming))
	for i, c := range incoming {
		ids[i] = c.Id
	}

	specs := []specification.Specification{specification.OwnedBy{UserId: userId}}
	watermark, hasWatermark := s.syncState.LastSync(userId)
	if hasWatermark {
		specs = append(specs, specification.UpdatedAfter{Watermark: watermark})
	}
	snapshot, err := uow.ChatRepository().FindAll(ctx, specs...)
	if err != nil {
		return err
	}

	if hasWatermark {
		// The watermark only narrows the snapshot; the records named by the
		// batch must always be visible to the plan, or a tombstone older than
		// the watermark would look absent and be revived by an upsert.
		targeted, err := uow.ChatRepository().FindAll(ctx,
			specification.OwnedBy{UserId: userId},
			specification.ByIds{Ids: ids},
		)
		if err != nil {
			return err
		}
		snapshot = append(snapshot, targeted...)
	}

	plan := BuildSyncPlan(userId, incoming, snapshot)
	for _, v := range plan.Violations {
		s.log.Warn("sync", "chat rejected: ownership violation", map[string]interface{}{
			"chat_id":        v.ChatId,
			"chat_user_id":   v.UserId,
			"target_user_id": userId,
		})
	}

	if len(plan.Upserts) > 0 || len(plan.DeleteChatIds) > 0 {
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		if err := uow.ChatRepository().UpsertAll(ctx, plan.Upserts); err != nil {
			uow.Rollback()
			return err
		}
		if err := uow.MessageRepository().DeleteByChatIds(ctx, plan.DeleteChatIds); err != nil {
			uow.Rollback()
			return err
		}
		if err := uow.Commit(); err != nil {
			return err
		}
	}

	if err := s.publisher.Publish(events.NewChatSyncedEvent(userId, len(plan.Upserts), len(plan.DeleteChatIds))); err != nil {
		s.log.Warn("sync", "failed to publish sync event", map[string]interface{}{"error": err.Error()})
	}

	// The watermark lives in the batch's logical time domain, never the wall
	// clock: updated_at stores client timestamps, and a wall-clock watermark
	// would exceed all of them and hide every synced row from the next
	// snapshot.
	var applied time.Time
	for _, c := range plan.Upserts {
		if c.UpdatedAt.After(applied) {
			applied = c.UpdatedAt
		}
	}
	if !applied.IsZero() {
		s.syncState.RecordSync(userId, applied)
	}

	return nil
}
