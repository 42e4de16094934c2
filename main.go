package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter(habitsService *usecase.HabitsService, userRepo *repository.UserRepo, pushSender *services.PushSender) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		public.GET("/health", handler.HealthHandler)

		auth := public.Group("/auth")
		{
			auth.POST("/google", func(c *gin.Context) {
				handler.GoogleAuthHandler(c, userRepo)
			})
		}

		public.GET("/notifications/vapid-public-key",
			middleware.CacheControlMiddleware("3600"),
			func(c *gin.Context) {
				handler.VAPIDPublicKeyHandler(c, pushSender)
			})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		auth := protected.Group("/auth")
		{
			auth.GET("/me", func(c *gin.Context) {
				handler.GetProfileHandler(c, userRepo)
			})
			auth.POST("/logout", handler.LogoutHandler)
		}

		habits := protected.Group("/habits")
		{
			habits.GET("", func(c *gin.Context) {
				handler.GetUserHabitsHandler(c, habitsService)
			})
			habits.POST("", func(c *gin.Context) {
				handler.CreateHabitHandler(c, habitsService)
			})
			habits.GET("/stats", func(c *gin.Context) {
				handler.OverallStatsHandler(c, habitsService)
			})
			habits.PUT("/:id", func(c *gin.Context) {
				handler.UpdateHabitHandler(c, habitsService)
			})
			habits.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteHabitHandler(c, habitsService)
			})
			habits.POST("/:id/completions", func(c *gin.Context) {
				handler.ToggleCompletionHandler(c, habitsService)
			})
			habits.GET("/:id/completions", func(c *gin.Context) {
				handler.GetCompletionsHandler(c, habitsService)
			})
		}

		notifications := protected.Group("/notifications")
		{
			notifications.POST("/subscribe", func(c *gin.Context) {
				handler.SubscribeHandler(c, userRepo)
			})
			notifications.DELETE("/subscribe", func(c *gin.Context) {
				handler.UnsubscribeHandler(c, userRepo)
			})
			notifications.POST("/test", func(c *gin.Context) {
				handler.TestNotificationHandler(c, userRepo, pushSender)
			})
		}
	}

	return router
}

func main() {
	// Redis-backed pieces degrade gracefully when Redis is absent
	redisURL := utils.GetEnvAsString("REDIS_URL", "")
	if redisURL != "" {
		blacklist, err := services.NewTokenBlacklist(redisURL)
		if err != nil {
			log.Printf("Token blacklist disabled: %v", err)
		} else {
			services.TokenBlacklist = blacklist
		}

		statsCache, err := services.NewStatsCache(redisURL, utils.GetEnvAsDuration("STATS_CACHE_TTL", 5*time.Minute))
		if err != nil {
			log.Printf("Stats cache disabled: %v", err)
		} else {
			services.GlobalStatsCache = statsCache
		}
	} else {
		log.Println("REDIS_URL not set; token blacklist and stats cache disabled")
	}

	// Repositories
	userRepo := repository.GetUserRepo(utils.MongoClient)
	habitsRepo := repository.GetHabitsRepo(utils.MongoClient)
	completionsRepo := repository.GetCompletionsRepo(utils.MongoClient)

	if err := repository.SetupIndexes(utils.MongoClient.Database(utils.DatabaseName())); err != nil {
		log.Printf("Failed to create indexes: %v", err)
	}

	// Services
	habitsService := usecase.NewHabitsService(habitsRepo, completionsRepo,
		services.GlobalStatsCache, config.LoadStatsConfig())

	pushCfg := config.LoadPushConfig()
	pushSender := services.NewPushSender(pushCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if pushCfg.Enabled() {
		scheduler := services.NewReminderScheduler(habitsRepo, completionsRepo,
			userRepo, pushSender, pushCfg.ReminderInterval)
		scheduler.Start(ctx)
		log.Println("Reminder scheduler started")
	} else {
		log.Println("VAPID keys not set; push reminders disabled")
	}

	middleware.TokenRevoked = services.IsTokenBlacklisted

	router := setupRouter(habitsService, userRepo, pushSender)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if err := utils.MongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	if services.TokenBlacklist != nil {
		services.TokenBlacklist.Close()
	}
	if services.GlobalStatsCache != nil {
		services.GlobalStatsCache.Close()
	}

	log.Println("Server shutdown complete")
}
