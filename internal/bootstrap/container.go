package bootstrap

import (
	"log"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/service"
	"ai-chat-be/internal/storage"
	"ai-chat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const chatEventsTopic = "CHAT_EVENTS"

type Container struct {
	// Controllers
	ChatController controller.IChatController
	LlmController  controller.ILlmController

	// Background services (exposed for main.go to run)
	EventLogService service.IEventLogService

	Logger logger.ILogger
}

func NewContainer(store *storage.Storage, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(chatEventsTopic, pubSub)
	eventLogService := service.NewEventLogService(pubSub, chatEventsTopic, sysLogger)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(cfg.Llm.Provider, cfg.Llm.BaseURL, cfg.Llm.APIKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Llm.Provider, cfg.Llm.BaseURL)

	// 4. Services
	syncState := memory.NewSyncStateRepository(time.Duration(cfg.App.SyncStateTTLHours) * time.Hour)
	syncService := service.NewSyncService(store, syncState, publisherService, sysLogger)
	historyService := service.NewHistoryService(store, publisherService, sysLogger)
	llmService := service.NewLlmService(llmProvider, cfg.Llm.DefaultModel)

	// 5. Controllers
	chatController := controller.NewChatController(syncService, historyService)
	llmController := controller.NewLlmController(llmService)

	return &Container{
		ChatController:  chatController,
		LlmController:   llmController,
		EventLogService: eventLogService,
		Logger:          sysLogger,
	}
}
