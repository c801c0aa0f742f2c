package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"membox/backend/internal/api"
	"membox/backend/internal/config"
	"membox/backend/internal/database"
	"membox/backend/internal/llm"
	"membox/backend/internal/memory"
	"membox/backend/internal/repository"
	"membox/backend/internal/service"
)

// Run wires the application together and serves HTTP until failure.
// It returns the process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	repo := repository.NewSQLiteRepository(db)
	provider := llm.NewQwenProvider(cfg.LLMBaseURL, cfg.LLMAPIKey)
	memClient := memory.NewHTTPClient(cfg.MemoryAPIURL)

	userService := service.NewUserService(repo)
	sessionService := service.NewSessionService(repo)
	uploadService := service.NewUploadService(cfg.UploadDir, cfg.BaseURL)
	chatService := service.NewChatService(
		repo, provider, memClient, sessionService,
		cfg.LLMModel, cfg.LLMVisionModel, cfg.MemorySearchLimit,
	)

	router := api.NewRouter(api.Handlers{
		Chat:    api.NewChatHandler(chatService),
		Session: api.NewSessionHandler(sessionService),
		User:    api.NewUserHandler(userService),
		Memory:  api.NewMemoryHandler(memClient, cfg.MemorySearchLimit),
		Upload:  api.NewUploadHandler(uploadService),
	}, userService, cfg.UploadDir)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server",
		"port", cfg.AppPort,
		"model", cfg.LLMModel,
		"vision_model", cfg.LLMVisionModel,
		"memory_api", cfg.MemoryAPIURL,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
