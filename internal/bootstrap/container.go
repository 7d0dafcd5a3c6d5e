package bootstrap

import (
	"log"

	"ai-studymate-be/internal/config"
	"ai-studymate-be/internal/controller"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/pkg/mailer"
	"ai-studymate-be/internal/repository"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/internal/service"
	"ai-studymate-be/pkg/embedding"
	"ai-studymate-be/pkg/llm/factory"
	"ai-studymate-be/pkg/rag/engine"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	CourseController       controller.ICourseController
	DocumentController     controller.IDocumentController
	ChatController         controller.IChatController
	SearchController       controller.ISearchController
	NoteController         controller.INoteController
	FlashcardController    controller.IFlashcardController
	QuizController         controller.IQuizController
	MindMapController      controller.IMindMapController
	StudyGuideController   controller.IStudyGuideController
	AnalyticsController    controller.IAnalyticsController
	NotificationController controller.INotificationController
	AdminController        controller.IAdminController

	// Background services, exposed for main.go to run
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// AI providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using embedding provider: ollama (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using embedding provider: gemini")
	}

	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Groq,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s", cfg.Ai.LLMProvider)

	// Retrieval pipeline
	indexStore := repository.NewGormIndexStore(uowFactory)
	ragEngine := engine.New(indexStore, embeddingProvider, llmProvider)

	// Messaging
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IngestTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
		indexStore,
		sysLogger,
	)

	// Services
	authService := service.NewAuthService(uowFactory, emailService, sysLogger, cfg.App.JWTSecret)
	oauthService := service.NewOAuthService(uowFactory, sysLogger, cfg.App.JWTSecret)
	courseService := service.NewCourseService(uowFactory, indexStore)
	documentService := service.NewDocumentService(uowFactory, publisherService, indexStore, sysLogger)
	chatService := service.NewChatService(uowFactory, ragEngine, sysLogger)
	searchService := service.NewSearchService(uowFactory, ragEngine)
	noteService := service.NewNoteService(uowFactory)
	flashcardService := service.NewFlashcardService(uowFactory, ragEngine, llmProvider)
	quizService := service.NewQuizService(uowFactory, ragEngine, llmProvider)
	mindMapService := service.NewMindMapService(uowFactory, ragEngine, llmProvider)
	studyGuideService := service.NewStudyGuideService(uowFactory, ragEngine)
	analyticsService := service.NewAnalyticsService(uowFactory)
	notificationService := service.NewNotificationService(uowFactory)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		CourseController:       controller.NewCourseController(courseService),
		DocumentController:     controller.NewDocumentController(documentService, cfg.App.UploadDir),
		ChatController:         controller.NewChatController(chatService, sysLogger),
		SearchController:       controller.NewSearchController(searchService),
		NoteController:         controller.NewNoteController(noteService),
		FlashcardController:    controller.NewFlashcardController(flashcardService),
		QuizController:         controller.NewQuizController(quizService),
		MindMapController:      controller.NewMindMapController(mindMapService),
		StudyGuideController:   controller.NewStudyGuideController(studyGuideService, sysLogger),
		AnalyticsController:    controller.NewAnalyticsController(analyticsService),
		NotificationController: controller.NewNotificationController(notificationService),
		AdminController:        controller.NewAdminController(adminService),
		ConsumerService:        consumerService,
		Logger:                 sysLogger,
	}
}
