package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"onboarding-service/consumer"
	"onboarding-service/handlers"
	"onboarding-service/middleware"
	"onboarding-service/models"
	"onboarding-service/monitoring"
	"onboarding-service/services"
	"onboarding-service/storage"
	"onboarding-service/utils"
)

func main() {
	logger := log.New(os.Stdout, "ONBOARDING: ", log.LstdFlags|log.Lshortfile)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := utils.InitSentry(dsn); err != nil {
			logger.Printf("Sentry disabled: %v", err)
		}
	}

	monitoring.Init()

	repo, err := models.NewPostgresRepository()
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Printf("Error closing database connection: %v", err)
		}
	}()

	store, err := storage.NewS3Store()
	if err != nil {
		logger.Fatalf("Failed to initialize object storage: %v", err)
	}
	assets := storage.NewAssetDirectory(store, os.Getenv("STORAGE_BASE_URL"))
	archiver := storage.NewArchiver(store)

	// Optional infrastructure: the service keeps running without cache,
	// events or search.
	cache := connectRedis(logger)
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Printf("Error closing Redis connection: %v", err)
			}
		}()
	}

	var kafka utils.KafkaProducer
	if producer, err := utils.NewKafkaProducer(); err != nil {
		logger.Printf("Kafka disabled: %v", err)
	} else {
		kafka = producer
		defer kafka.Close()
	}

	var es utils.ElasticsearchClient
	if esClient, err := utils.NewElasticsearchClient(); err != nil {
		logger.Printf("Elasticsearch disabled: %v", err)
	} else {
		es = esClient
	}

	authService := services.NewAuthService(repo)
	userService := services.NewUserService(repo)
	noteService := services.NewNoteService(repo)
	reportService := services.NewReportService(repo, assets)
	mediaService := services.NewMediaService(assets, archiver)

	authHandler := handlers.NewAuthHandler(authService, kafka)
	clientHandler := handlers.NewClientHandler(userService, cache, es, kafka)
	noteHandler := handlers.NewNoteHandler(noteService)
	reportHandler := handlers.NewReportHandler(reportService, mediaService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	if cache != nil || es != nil {
		clientConsumer := consumer.NewClientConsumer(cache, es)
		go clientConsumer.Start(context.Background())
		defer clientConsumer.Stop()
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.PrometheusMetrics())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.ErrorHandler())

	router.GET("/metrics", gin.WrapH(monitoring.Handler()))
	router.GET("/health", healthHandler(cache))

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/sign-in", authHandler.SignIn)

		authenticated := api.Group("")
		authenticated.Use(middleware.Authenticate())
		{
			authenticated.GET("/clients", clientHandler.List)
			authenticated.GET("/clients/search", clientHandler.Search)
			authenticated.GET("/clients/:clientEmail", clientHandler.Get)
			authenticated.POST("/clients/:clientEmail", clientHandler.Update)
			authenticated.GET("/clients/:clientEmail/form-filled", clientHandler.FormFilled)
			authenticated.DELETE("/clients/:clientEmail", clientHandler.Delete)

			authenticated.GET("/notes/meeting/:clientEmail", noteHandler.GetMeetingNotes)
			authenticated.GET("/notes/meeting/:clientEmail/:noteId", noteHandler.GetMeetingNote)
			authenticated.GET("/notes/useful-info/:clientEmail", noteHandler.GetUsefulInfo)
			authenticated.GET("/notes/contact-details/:clientEmail", noteHandler.GetContactDetails)
			authenticated.PUT("/notes/meeting/:recipientEmail", noteHandler.PutMeetingNote)
			authenticated.PUT("/notes/useful-info/:recipientEmail", noteHandler.PutUsefulInfo)
			authenticated.PUT("/notes/contact-details/:recipientEmail", noteHandler.PutContactDetails)
			authenticated.DELETE("/notes/meeting/:noteId", noteHandler.DeleteMeetingNote)

			authenticated.GET("/reports/:clientEmail", reportHandler.GetReports)
			authenticated.GET("/reports/:clientEmail/:reportId", reportHandler.GetReport)
			authenticated.PUT("/reports/:clientEmail", reportHandler.PutReport)
			authenticated.GET("/reports/zipped/:clientEmail/:reportId", reportHandler.GetReportZipped)
			authenticated.DELETE("/reports/id/:id", reportHandler.DeleteReport)

			authenticated.PUT("/media-assets/:clientEmail", mediaHandler.PutMediaAssets)
			authenticated.GET("/media-assets/:clientEmail", mediaHandler.GetMediaAssets)
			authenticated.GET("/media-assets/zipped/:clientEmail", mediaHandler.GetMediaAssetsZipped)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Printf("Server is running on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}

func connectRedis(logger *log.Logger) utils.RedisClient {
	maxRetries := 5
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		cache, err := utils.NewRedisClient()
		if err == nil {
			return cache
		}
		logger.Printf("Attempt %d: Failed to connect to Redis: %v", i+1, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	logger.Printf("Redis disabled after %d attempts", maxRetries)
	return nil
}

func healthHandler(cache utils.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		details := gin.H{}
		status := http.StatusOK

		if cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cache.SetToCache(ctx, "healthcheck", "ping", 10*time.Second); err != nil {
				details["redis"] = "unavailable"
				status = http.StatusServiceUnavailable
			} else {
				details["redis"] = "available"
			}
		}

		if status == http.StatusOK {
			c.JSON(status, gin.H{"status": "ok", "details": details})
			return
		}
		c.JSON(status, gin.H{"status": "degraded", "details": details})
	}
}
