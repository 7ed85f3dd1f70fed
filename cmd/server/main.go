package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/settleco/accord/internal/common/clock"
	"github.com/settleco/accord/internal/common/otp"
	"github.com/settleco/accord/internal/common/uuid"
	"github.com/settleco/accord/internal/eventbus"
	"github.com/settleco/accord/internal/handlers/httpapi"
	draftRepo "github.com/settleco/accord/internal/repositories/draft"
	reportRepo "github.com/settleco/accord/internal/repositories/report"
	sessionRepo "github.com/settleco/accord/internal/repositories/session"
	userRepo "github.com/settleco/accord/internal/repositories/user"
	"github.com/settleco/accord/internal/services/casefile"
)

type config struct {
	Addr          string        `env:"ADDR" envDefault:":8000"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	ShutdownWait  time.Duration `env:"SHUTDOWN_WAIT" envDefault:"10s"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	drafts, err := draftRepo.NewRedis(&draftRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	reports, err := reportRepo.NewRedis(&reportRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	users, err := userRepo.NewRedis(&userRepo.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	service, err := casefile.New(&casefile.Config{
		SessionRepo:   sessions,
		DraftRepo:     drafts,
		ReportRepo:    reports,
		UserRepo:      users,
		EventBus:      eventbus.New(nil),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		OTPGenerator:  otp.New(),
	})
	if err != nil {
		return err
	}

	api, err := httpapi.New(&httpapi.Config{
		Service: service,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownWait)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return redisClient.Close()
}
