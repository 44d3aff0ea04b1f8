package bootstrap

import (
	"context"
	"log"
	"time"

	"shopping-chat-be/internal/config"
	"shopping-chat-be/internal/controller"
	"shopping-chat-be/internal/pkg/logger"
	"shopping-chat-be/internal/pkg/serverutils"
	"shopping-chat-be/internal/repository/implementation"
	"shopping-chat-be/internal/service"
	"shopping-chat-be/pkg/assistant"
	"shopping-chat-be/pkg/assistant/dashboard"
	"shopping-chat-be/pkg/assistant/extension"
	"shopping-chat-be/pkg/assistant/settings"
	"shopping-chat-be/pkg/llm/factory"
	"shopping-chat-be/pkg/llm/gateway"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

type Container struct {
	ChatController         controller.IChatController
	ConversationController controller.IConversationController
	JwtMiddleware          fiber.Handler
	Logger                 logger.ILogger
}

func NewContainer(db *mongo.Database, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	zlog := sysLogger.Raw()

	// 2. LLM Provider + Gateway
	baseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.Provider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewProvider(cfg.Ai.Provider, cfg.Ai.OpenAIAPIKey, baseURL, cfg.Ai.DashboardModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.Provider)

	// Model selection is keyed by resolved page type only; client metadata
	// never picks a model directly.
	routes := map[string]gateway.ModelRoute{
		string(assistant.PageDashboard): {Model: cfg.Ai.DashboardModel, Temperature: 0.5, MaxTokens: 200, JSONOutput: true},
		string(assistant.PageSettings):  {Model: cfg.Ai.SettingsModel, Temperature: 0.7, MaxTokens: 250},
		string(assistant.PageExtension): {Model: cfg.Ai.ExtensionModel, Temperature: 0.7, MaxTokens: 300, JSONOutput: true},
	}
	gw := gateway.New(llmProvider, routes, routes[string(assistant.PageDashboard)], cfg.Chat.ResponseTimeout, zlog)

	// 3. Handler Registry
	registry := assistant.NewRegistry()
	registry.Register(assistant.PageDashboard, dashboard.NewHandler(gw, zlog))
	registry.Register(assistant.PageSettings, settings.NewHandler(gw, zlog))
	registry.Register(assistant.PageExtension, extension.NewHandler(gw, zlog))

	// 4. Persistence
	conversationRepo := implementation.NewConversationRepository(db)
	idxCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := conversationRepo.EnsureIndexes(idxCtx); err != nil {
		log.Printf("[WARN] Failed to ensure conversation indexes: %v", err)
	}

	// 5. Services
	chatService := service.NewChatService(registry, cfg.Chat.MaxQueryLength, sysLogger)
	conversationService := service.NewConversationService(conversationRepo, sysLogger)

	return &Container{
		ChatController:         controller.NewChatController(chatService),
		ConversationController: controller.NewConversationController(conversationService),
		JwtMiddleware:          serverutils.JwtMiddleware(cfg.Jwt.Secret),
		Logger:                 sysLogger,
	}
}
