// File: schedulo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedulo/config"
	"schedulo/database"
	"schedulo/handlers"
	"schedulo/middleware"
	"schedulo/routes"
	"schedulo/services/agent"
	calendarSvc "schedulo/services/calendar"
	ai "schedulo/services/intelligence"
	"schedulo/services/session"
	"schedulo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Calendar backend: Google when credentials are on disk, in-memory otherwise.
	availabilityCache := calendarSvc.NewAvailabilityCache(utils.GetCacheClient(), config.AppConfig.AvailabilityCacheTTL)
	var calSvc calendarSvc.Service
	googleSvc, err := calendarSvc.NewGoogleService(
		context.Background(),
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.GoogleTokenFile,
		config.AppConfig.CalendarID,
		availabilityCache,
	)
	if err != nil {
		logger.Sugar().Warnf("main: Google Calendar unavailable, using in-memory calendar: %v", err)
		calSvc = calendarSvc.NewMockService()
	} else {
		calSvc = googleSvc
	}

	aiSvc := ai.NewDefaultService(config.AppConfig.GeminiAPIKey)
	bookingAgent := agent.New(calSvc, aiSvc)

	// Session storage backend.
	var sessions session.Store
	redisClients := []*redis.Client{utils.GetCacheClient()}
	switch config.AppConfig.SessionStore {
	case "redis":
		utils.InitSessionCache()
		redisClients = append(redisClients, utils.GetSessionCacheClient())
		sessions = session.NewRedisStore(utils.GetSessionCacheClient(), config.AppConfig.SessionTTL)
	case "mongo":
		database.InitDB()
		mongoSessions, err := session.NewMongoStore(database.Database(), config.AppConfig.SessionTTL)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize mongo session store: %v", err)
		}
		sessions = mongoSessions
	default:
		sessions = session.NewMemoryStore(config.AppConfig.SessionTTL)
	}

	utils.StartHealthMonitor(redisClients, database.MongoClient)

	chatHandler := handlers.NewChatHandler(bookingAgent, sessions)
	routes.RegisterRoutes(router, chatHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	database.CloseDB(ctx)
	logger.Info("Server exited")
}
