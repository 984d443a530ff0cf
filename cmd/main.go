package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/sports-portal/config"
	"github.com/Dosada05/sports-portal/db"
	"github.com/Dosada05/sports-portal/handlers"
	"github.com/Dosada05/sports-portal/live"
	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/notify"
	"github.com/Dosada05/sports-portal/repositories"
	api "github.com/Dosada05/sports-portal/routes"
	"github.com/Dosada05/sports-portal/services"
	"github.com/Dosada05/sports-portal/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("timezone", cfg.Location().String()),
		slog.Bool("redis_relay", cfg.RedisURL != ""),
		slog.Bool("amqp", cfg.AMQPURL != ""),
		slog.Bool("r2", cfg.R2().Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DB())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.RunMigrations {
		if err := db.Migrate(dbConn); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	// Загрузчик логотипов (Cloudflare R2) опционален
	var uploader storage.FileUploader
	if cfg.R2().Enabled() {
		uploader, err = storage.NewR2Uploader(ctx, cfg.R2())
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, team logo uploads are disabled")
	}

	g, gCtx := errgroup.WithContext(ctx)

	// WebSocket Hub и доставка событий
	wsHub := live.NewHub(logger)
	g.Go(func() error {
		wsHub.Run(gCtx)
		return nil
	})

	var roomBroadcaster live.Broadcaster = wsHub
	if cfg.RedisURL != "" {
		redisClient, err := live.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		relay := live.NewRedisRelay(redisClient, cfg.RedisChannel, wsHub, logger)
		g.Go(func() error {
			relay.Serve(gCtx, time.Second)
			return nil
		})
		// события приходят в hub обратно через подписку, напрямую не шлём
		roomBroadcaster = relay
	}

	var notifier live.Broadcaster
	if cfg.AMQPURL != "" {
		publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		notifier = publisher
		logger.Info("AMQP publisher connected", slog.String("exchange", cfg.AMQPExchange))
	}
	broadcaster := live.NewFanout(logger, roomBroadcaster, notifier)

	// Инициализация репозиториев
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	txRunner := repositories.NewTxRunner(dbConn)

	// Инициализация сервисов
	clock := services.Clock(time.Now)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, txRunner, teamService, broadcaster, clock, cfg.Location(), logger)
	scoreService := services.NewScoreService(matchRepo, teamRepo, broadcaster, clock, logger)
	standingsService := services.NewStandingsService(matchRepo, clock, cfg.Location())

	// Планировщик: проставляет победителей прошедшим матчам без результата
	g.Go(func() error {
		runSettler(gCtx, matchService, cfg.SettleInterval, logger)
		return nil
	})

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Match:     handlers.NewMatchHandler(matchService, scoreService),
		Standings: handlers.NewStandingsHandler(standingsService),
		Team:      handlers.NewTeamHandler(teamService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, matchService, cfg.CORSAllowedOrigins, logger),
		Health:    handlers.NewHealthHandler(dbConn),
	}, middleware.NewAuthenticator(cfg.JWTSecretKey, logger), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

func runSettler(ctx context.Context, matchService services.MatchService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("result settlement scheduler started", slog.Duration("interval", interval))

	settle := func() {
		n, err := matchService.SettlePastResults(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("scheduler: settlement run failed", slog.Any("error", err))
			}
			return
		}
		if n > 0 {
			logger.Info("scheduler: settled past match results", slog.Int("matches", n))
		}
	}

	// первый прогон сразу при старте
	settle()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			settle()
		}
	}
}
