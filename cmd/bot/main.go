package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kodbot/internal/config"
	"kodbot/internal/dispatcher"
	"kodbot/internal/handler"
	"kodbot/internal/health"
	"kodbot/internal/i18n"
	"kodbot/internal/remote"
	"kodbot/internal/repository"
	"kodbot/internal/repository/jsonfile"
	"kodbot/internal/repository/postgres"
	"kodbot/internal/service"
	"kodbot/internal/state"
	"kodbot/internal/telegram"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v3"
)

// repositories groups the storage backend chosen at startup
type repositories struct {
	users   repository.UserRepository
	prefs   repository.PreferenceRepository
	stats   repository.StatsRepository
	catalog repository.CatalogRepository
	close   func() error
}

func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting kodbot",
		zap.String("storage", cfg.StorageDriver),
		zap.Strings("channels", cfg.Channels),
	)

	texts, err := i18n.NewProvider(cfg.DefaultLanguage)
	if err != nil {
		logger.Fatal("Failed to load locales", zap.Error(err))
	}

	repos, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer repos.close()

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: newPoller(cfg),
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	messenger := telegram.NewMessenger(bot)

	var resolver service.ReferenceResolver
	if cfg.Remote.APIURL != "" {
		resolver = remote.NewClient(cfg.Remote.APIURL, cfg.Remote.APIKey, cfg.Remote.Timeout)
	} else {
		logger.Warn("REMOTE_API_URL not set, catalog links will not resolve")
	}

	// Initialize services
	userService := service.NewUserService(repos.users, repos.prefs, texts, cfg.AdminID, logger)
	statsService := service.NewStatsService(repos.stats, logger)
	catalogService := service.NewCatalogService(jsonfile.NewVideoDir(cfg.VideoDir), repos.catalog, resolver, logger)
	subscriptionService := service.NewSubscriptionService(messenger, cfg.Channels, logger)

	d := dispatcher.New(
		messenger,
		userService,
		subscriptionService,
		catalogService,
		statsService,
		state.NewMemory(),
		texts,
		dispatcher.Config{AdminID: cfg.AdminID, AdminURL: cfg.AdminURL},
		logger,
	)

	// Initialize handler
	h := handler.NewHandler(bot, d, userService, statsService, catalogService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthServer := health.NewServer(cfg.HTTPAddr, startedAt, logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Health endpoint listening", zap.String("addr", cfg.HTTPAddr))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Bot started successfully")
		bot.Start()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received, stopping bot...")

		// Graceful shutdown
		bot.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Stopped with error", zap.Error(err))
		return
	}

	logger.Info("Bot stopped gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func newPoller(cfg *config.Config) tele.Poller {
	if cfg.Webhook.URL != "" {
		return &tele.Webhook{
			Listen:   cfg.Webhook.Listen,
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}
	return &tele.LongPoller{Timeout: 10 * time.Second}
}

func openRepositories(cfg *config.Config, logger *zap.Logger) (*repositories, error) {
	if cfg.StorageDriver == config.StorageFile {
		logger.Info("Using JSON file storage", zap.String("dir", cfg.DataDir))
		return &repositories{
			users:   jsonfile.NewUserRepo(cfg.DataDir),
			prefs:   jsonfile.NewPreferenceRepo(cfg.DataDir),
			stats:   jsonfile.NewStatsRepo(cfg.DataDir),
			catalog: jsonfile.NewCatalogRepo(cfg.DataDir),
			close:   func() error { return nil },
		}, nil
	}

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	userRepo := postgres.NewUserRepo(db)
	return &repositories{
		users:   userRepo,
		prefs:   userRepo,
		stats:   postgres.NewStatsRepo(db),
		catalog: postgres.NewCatalogRepo(db),
		close:   db.Close,
	}, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}
