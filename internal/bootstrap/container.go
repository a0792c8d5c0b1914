package bootstrap

import (
	"log"
	"time"

	"campus-connect-be/internal/config"
	"campus-connect-be/internal/constant"
	"campus-connect-be/internal/controller"
	"campus-connect-be/internal/handler"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/repository/memory"
	"campus-connect-be/internal/repository/unitofwork"
	"campus-connect-be/internal/service"
	"campus-connect-be/internal/websocket"
	pktNats "campus-connect-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ChatController         controller.IChatController
	AnnouncementController controller.IAnnouncementController

	// Middleware
	AuthMiddleware fiber.Handler

	// Background services (exposed for main.go to run)
	DispatcherService service.IDispatcherService

	// WebSockets
	RealtimeHandler *handler.RealtimeHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-process event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// 4. WebSocket hub on its own log file to keep main logs clean
	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	wsHub := websocket.NewHub(wsLogger)

	// 5. Services
	sessionTTL := time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, sessionTTL, natsPub, sysLogger)

	publisherService := service.NewPublisherService(constant.MessagePublishedTopic, pubSub)
	chatService := service.NewChatService(uowFactory, publisherService, sysLogger)
	announcementService := service.NewAnnouncementService(uowFactory, natsPub, sysLogger)

	dispatcherService := service.NewDispatcherService(pubSub, constant.MessagePublishedTopic, wsHub, wsLogger)

	// 6. Announcement fan-out worker
	if natsSub != nil {
		recipientCache := memory.NewRecipientCache(30 * time.Second)
		notificationService := service.NewNotificationService(natsSub, uowFactory, recipientCache, wsHub, wsLogger)
		if err := notificationService.Start(); err != nil {
			log.Printf("[WARN] Failed to start announcement fan-out worker: %v", err)
		}
	}

	// 7. Controllers
	authController := controller.NewAuthController(authService)
	chatController := controller.NewChatController(chatService)
	announcementController := controller.NewAnnouncementController(announcementService)

	realtimeHandler := handler.NewRealtimeHandler(authService, chatService, wsHub, wsLogger)

	return &Container{
		AuthController:         authController,
		ChatController:         chatController,
		AnnouncementController: announcementController,
		AuthMiddleware:         serverutils.AuthMiddleware(authService),
		DispatcherService:      dispatcherService,
		RealtimeHandler:        realtimeHandler,
		WebSocketHub:           wsHub,
		Logger:                 sysLogger,
	}
}
