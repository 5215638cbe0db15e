package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/migration"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/service"
	"ai-chat-be/internal/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestStorage(t *testing.T) *storage.Storage {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	sysLogger := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	store, err := storage.Open(config.DatabaseConfig{Connection: dsn}, nil, sysLogger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func newTestPublisher() service.IPublisherService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	return service.NewPublisherService("CHAT_EVENTS_TEST", pubSub)
}

func TestMigrations(t *testing.T) {
	store := openTestStorage(t)

	version, err := migration.CurrentVersion(store.DB())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, 1, "baseline migration should have been applied")

	t.Run("second run applies nothing", func(t *testing.T) {
		runner := migration.NewRunner()
		require.NoError(t, runner.Run(store.DB()))

		again, err := migration.CurrentVersion(store.DB())
		require.NoError(t, err)
		assert.Equal(t, version, again)
	})

	t.Run("failed procedure rolls the whole run back", func(t *testing.T) {
		runner := migration.NewRunner()
		runner.Register(version, func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE TABLE tmp_migration_probe (id INT)`).Error; err != nil {
				return err
			}
			return fmt.Errorf("boom")
		})

		err := runner.Run(store.DB())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")

		after, err := migration.CurrentVersion(store.DB())
		require.NoError(t, err)
		assert.Equal(t, version, after, "version must not advance on failure")
		assert.False(t, store.DB().Migrator().HasTable("tmp_migration_probe"),
			"partial effects must be rolled back")
	})
}

func TestMessageIdempotence(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()
	uow := store.Factory().NewUnitOfWork(ctx)

	userId := uuid.NewString()
	chat := &entity.Chat{
		Id:        uuid.NewString(),
		UserId:    userId,
		Title:     "idempotence probe",
		UpdatedAt: time.Now(),
	}
	require.NoError(t, uow.ChatRepository().Create(ctx, chat))

	msg := &entity.Message{
		Id:        uuid.NewString(),
		ChatId:    chat.Id,
		Content:   "hello",
		Role:      "user",
		CreatedAt: time.Now(),
	}

	require.NoError(t, uow.MessageRepository().CreateAll(ctx, []*entity.Message{msg}))
	require.NoError(t, uow.MessageRepository().CreateAll(ctx, []*entity.Message{msg}))

	count, err := uow.MessageRepository().Count(ctx, specification.ByChatId{ChatId: chat.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSyncChats_TombstoneCascadesMessages(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()
	uow := store.Factory().NewUnitOfWork(ctx)

	userId := uuid.NewString()
	chatId := uuid.NewString()

	chat := &entity.Chat{
		Id:        chatId,
		UserId:    userId,
		Title:     "to be deleted",
		UpdatedAt: time.UnixMilli(40).UTC(),
	}
	require.NoError(t, uow.ChatRepository().Create(ctx, chat))
	require.NoError(t, uow.MessageRepository().CreateAll(ctx, []*entity.Message{{
		Id:        uuid.NewString(),
		ChatId:    chatId,
		Content:   "bye",
		Role:      "user",
		CreatedAt: time.Now(),
	}}))

	sysLogger := logger.NewZapLogger(t.TempDir()+"/sync.log", false)
	syncService := service.NewSyncService(
		store,
		memory.NewSyncStateRepository(time.Hour),
		newTestPublisher(),
		sysLogger,
	)

	deletedAt := int64(60)
	err := syncService.SyncChats(ctx, userId, []dto.ChatPayload{{
		Id:        chatId,
		UserId:    userId,
		UpdatedAt: 50,
		DeletedAt: &deletedAt,
	}})
	require.NoError(t, err)

	got, err := uow.ChatRepository().FindOne(ctx, specification.ById{Id: chatId})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsDeleted())

	count, err := uow.MessageRepository().Count(ctx, specification.ByChatId{ChatId: chatId})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "tombstoned chat must cascade its messages")
}

func TestSyncChats_SecondSyncAgainstRecordedWatermark(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()
	uow := store.Factory().NewUnitOfWork(ctx)

	userId := uuid.NewString()
	tombstonedId := uuid.NewString()
	renamedId := uuid.NewString()

	sysLogger := logger.NewZapLogger(t.TempDir()+"/resync.log", false)
	syncService := service.NewSyncService(
		store,
		memory.NewSyncStateRepository(time.Hour),
		newTestPublisher(),
		sysLogger,
	)

	deletedAt := int64(50)
	require.NoError(t, syncService.SyncChats(ctx, userId, []dto.ChatPayload{
		{Id: tombstonedId, UserId: userId, UpdatedAt: 50, DeletedAt: &deletedAt},
		{Id: renamedId, UserId: userId, Title: "first", UpdatedAt: 40},
	}))

	// Second sync runs against the watermark recorded by the first: the
	// tombstone must stay terminal and the newer rename must still land.
	require.NoError(t, syncService.SyncChats(ctx, userId, []dto.ChatPayload{
		{Id: tombstonedId, UserId: userId, Title: "revived", UpdatedAt: 200},
		{Id: renamedId, UserId: userId, Title: "second", UpdatedAt: 200},
	}))

	tombstoned, err := uow.ChatRepository().FindOne(ctx, specification.ById{Id: tombstonedId})
	require.NoError(t, err)
	require.NotNil(t, tombstoned)
	assert.True(t, tombstoned.IsDeleted(), "a synced tombstone must survive later client updates")

	renamed, err := uow.ChatRepository().FindOne(ctx, specification.ById{Id: renamedId})
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, "second", renamed.Title)
	assert.False(t, renamed.IsDeleted())
}

func TestUninitializedStorageIsRejected(t *testing.T) {
	// No database involved: the guard fires synchronously.
	var store *storage.Storage

	sysLogger := logger.NewZapLogger(t.TempDir()+"/guard.log", false)
	historyService := service.NewHistoryService(store, newTestPublisher(), sysLogger)

	_, err := historyService.GetChats(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, storage.ErrNotInitialized)

	assert.NoError(t, store.Close(), "Close is safe on a storage that was never opened")
}
