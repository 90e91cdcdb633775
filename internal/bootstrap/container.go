package bootstrap

import (
	"context"
	"log"

	"bandoxanh-be/internal/config"
	"bandoxanh-be/internal/controller"
	"bandoxanh-be/internal/handler"
	"bandoxanh-be/internal/pkg/logger"
	"bandoxanh-be/internal/pkg/mailer"
	"bandoxanh-be/internal/repository/implementation"
	"bandoxanh-be/internal/repository/memory"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/internal/service"
	"bandoxanh-be/internal/websocket"
	"bandoxanh-be/pkg/ai"
	"bandoxanh-be/pkg/quota"

	pktNats "bandoxanh-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	UserController         controller.IUserController
	PostController         controller.IPostController
	AiController           controller.IAiController
	BadgeController        controller.IBadgeController
	PaymentController      controller.IPaymentController
	AdminController        controller.IAdminController
	NotificationController controller.INotificationController

	// Background Services (Exposed for main.go to run)
	MailConsumer service.IMailConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Exposed for modules that register their own routes over it
	DB *gorm.DB
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	mailPublisher := service.NewMailPublisher(pubSub, cfg.Keys.WelcomeMailTopic)
	mailConsumer := service.NewMailConsumerService(pubSub, cfg.Keys.WelcomeMailTopic, emailService)

	authService := service.NewAuthService(uowFactory, natsPub, mailPublisher)
	oauthService := service.NewOAuthService(uowFactory, natsPub, mailPublisher)
	userService := service.NewUserService(uowFactory, natsPub)
	postService := service.NewPostService(uowFactory, natsPub)
	badgeService := service.NewBadgeService(uowFactory, natsPub)
	paymentService := service.NewPaymentService(uowFactory, natsPub, cfg.Quota)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	// AI analysis with the daily quota gate in front of it
	guestQuotaRepo := memory.NewGuestQuotaRepository()
	quotaGate := quota.NewGate(cfg.Quota, guestQuotaRepo)
	geminiClient := ai.NewClient(cfg.Keys.GoogleGemini)
	aiService := service.NewAiService(uowFactory, quotaGate, geminiClient, cfg.App)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	userRepo := implementation.NewUserRepository(db)
	notifService := service.NewNotificationService(notifRepo, userRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(wsHub)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		UserController:         controller.NewUserController(userService),
		PostController:         controller.NewPostController(postService),
		AiController:           controller.NewAiController(aiService),
		BadgeController:        controller.NewBadgeController(badgeService),
		PaymentController:      controller.NewPaymentController(paymentService),
		AdminController:        controller.NewAdminController(adminService, authService, badgeService),
		NotificationController: controller.NewNotificationController(notifService),

		MailConsumer: mailConsumer,

		DB: db,
	}
}
