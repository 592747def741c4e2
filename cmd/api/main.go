package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"webond/internal/adapter/api"
	"webond/internal/adapter/api/handler"
	apimiddleware "webond/internal/adapter/api/middleware"
	"webond/internal/adapter/api/router"
	"webond/internal/adapter/repository"
	"webond/internal/domain/service"
	"webond/internal/infrastructure/cache"
	"webond/internal/infrastructure/firebase"
	"webond/internal/infrastructure/ratelimit"
	"webond/internal/infrastructure/websocket"
	"webond/internal/usecase"
	"webond/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	taskRepo := repository.NewFirestoreTaskRepository(firestoreClient)
	transactionRepo := repository.NewFirestoreTransactionRepository(firestoreClient)
	ratingRepo := repository.NewFirestoreRatingRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	var paymentService service.PaymentService
	if cfg.StripeSecretKey != "" {
		paymentService = service.NewStripePaymentService(cfg.StripeSecretKey)
	} else {
		log.Printf("STRIPE_SECRET_KEY not set, escrow runs without a payment provider")
	}

	var recommendationCache usecase.RecommendationCache
	if cfg.RedisAddress != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddress)
		if err != nil {
			log.Printf("Redis unavailable, recommendation cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			recommendationCache = cache.NewRecommendationCache(redisClient, time.Duration(cfg.RecommendTTL)*time.Second)
		}
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, ratingRepo)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, userRepo, recommendationCache)
	paymentUseCase := usecase.NewPaymentUseCase(transactionRepo, taskRepo, paymentService)
	ratingUseCase := usecase.NewRatingUseCase(ratingRepo, taskRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, wsManager, rateLimiter)
	assistUseCase := usecase.NewAssistUseCase()

	wsManager.SetSink(chatUseCase)

	handler.Setup(authUseCase, userUseCase, taskUseCase, paymentUseCase, ratingUseCase, chatUseCase, assistUseCase)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, authMiddleware)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
