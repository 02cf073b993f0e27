package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/elderbridge-backend/internal/db"
	"github.com/yungbote/elderbridge-backend/internal/handlers"
	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/middleware"
	"github.com/yungbote/elderbridge-backend/internal/observability"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/server"
	"github.com/yungbote/elderbridge-backend/internal/services"
	"github.com/yungbote/elderbridge-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	mediaRoot := utils.GetEnv("MEDIA_ROOT", "./uploads/media", log)
	knowledgePath := utils.GetEnv("CHAT_KNOWLEDGE_PATH", "./data/knowledge.txt", log)
	allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "elderbridge-backend",
		Environment: logMode,
		Version:     os.Getenv("APP_VERSION"),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	elderRepo := repos.NewElderRepo(thePG, log)
	youngerRepo := repos.NewYoungerRepo(thePG, log)
	reminderRepo := repos.NewReminderRepo(thePG, log)
	careFileRepo := repos.NewCareFileRepo(thePG, log)
	careMessageRepo := repos.NewCareMessageRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	geminiClient, err := services.NewGeminiClient(log)
	if err != nil {
		log.Fatal("Gemini client init failed", "error", err)
	}
	docStore := services.NewDocumentStore(log)
	extractor := services.NewTextExtractor(log, geminiClient)
	assembler := services.NewContextAssembler(log, docStore)
	structured := services.NewStructuredOutputService(log, geminiClient)
	conversation := services.NewConversationLog(thePG, log, careMessageRepo)
	transcriber := services.NewWhisperTranscriber(log)
	authService := services.NewAuthService(log, userRepo)
	elderService := services.NewElderService(log, elderRepo)
	youngerService := services.NewYoungerService(log, youngerRepo)
	smsSender := services.NewTwilioSender(log)
	reminderService := services.NewReminderService(log, reminderRepo, elderRepo, smsSender)
	reminderService.Start()
	defer reminderService.Stop()
	chatService := services.NewChatService(log, geminiClient, elderRepo, youngerRepo, reminderRepo, knowledgePath)
	educationService := services.NewEducationService(
		thePG, log,
		docStore, extractor, assembler,
		geminiClient, structured, conversation, transcriber,
		elderRepo, careFileRepo,
		mediaRoot,
	)
	studyService := services.NewStudyService(log, docStore, extractor, geminiClient, structured, careFileRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	routerCfg := server.RouterConfig{
		ServiceName:       "elderbridge-backend",
		AuthMiddleware:    authMiddleware,
		AuthHandler:       handlers.NewAuthHandler(authService),
		DBHandler:         handlers.NewDBHandler(postgresService),
		ElderHandler:      handlers.NewElderHandler(elderService),
		YoungerHandler:    handlers.NewYoungerHandler(youngerService),
		ChatHandler:       handlers.NewChatHandler(chatService),
		EducationHandler:  handlers.NewEducationHandler(educationService),
		StudyHandler:      handlers.NewStudyHandler(studyService),
		MedicationHandler: handlers.NewMedicationHandler(reminderService),
	}
	if allowedOrigins != "" {
		routerCfg.AllowedOrigins = strings.Split(allowedOrigins, ",")
	}

	router := server.NewRouter(routerCfg)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
