package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-events-backend/internal/config"
	"community-events-backend/internal/handlers"
	"community-events-backend/internal/middleware"
	"community-events-backend/internal/repository"
	"community-events-backend/internal/services"
	"community-events-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Connect to object storage
	store, err := storage.New(context.Background(), cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create object store")
	}

	// Verifier for Google-issued identity tokens
	verifier, err := services.NewGoogleVerifier(context.Background(), cfg.Auth.IssuerURL, cfg.Auth.ClientID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create identity verifier")
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)

	// Initialize services
	hub := services.NewHub()
	authService := services.NewAuthService(verifier, userRepo, cfg.Session.Secret, cfg.Session.TTL())
	userService := services.NewUserService(userRepo, authService)
	eventService := services.NewEventService(eventRepo, mediaRepo, hub)
	mediaService := services.NewMediaService(mediaRepo, store, hub)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	boardHandler := handlers.NewBoardHandler(boardRepo)
	wsHandler := handlers.NewWebSocketHandler(hub, authService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/events/fetch", eventHandler.Fetch)
		r.Post("/events/retrieve/media", eventHandler.RetrieveMedia)
		r.Get("/board/fetch", boardHandler.Fetch)
		r.Post("/google/auth", authHandler.GoogleAuth)
		r.Post("/users/user/login/attempt", userHandler.LoginAttempt)
		r.Post("/users/user/register", userHandler.Register)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))
			r.Use(middleware.RequireRoles("admin"))
			r.Post("/events/create", eventHandler.Create)
			r.Put("/events/update", eventHandler.Update)
			r.Delete("/events/delete", eventHandler.Delete)
			r.Post("/media/upload/file", mediaHandler.UploadFile)
			r.Post("/media/registerMedia", mediaHandler.RegisterMedia)
			r.Delete("/media/deleteMedia", mediaHandler.DeleteMedia)
			r.Post("/users/user/approve", userHandler.Approve)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
