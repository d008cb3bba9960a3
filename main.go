package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/ketvision/telegram-bot/pkg/auth"
	"github.com/ketvision/telegram-bot/pkg/converter"
	"github.com/ketvision/telegram-bot/pkg/database"
	"github.com/ketvision/telegram-bot/pkg/domain"
	"github.com/ketvision/telegram-bot/pkg/executor"
	"github.com/ketvision/telegram-bot/pkg/logger"
	"github.com/ketvision/telegram-bot/pkg/moondream"
	"github.com/ketvision/telegram-bot/pkg/openai"
	"github.com/ketvision/telegram-bot/pkg/repository"
	"github.com/ketvision/telegram-bot/pkg/services"
	"github.com/ketvision/telegram-bot/pkg/storage"
	"github.com/ketvision/telegram-bot/pkg/telegram"
	"github.com/ketvision/telegram-bot/pkg/workers"
)

type Config struct {
	TelegramBotToken          string        `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramAuthorizedUserIDs []int64       `env:"TELEGRAM_AUTHORIZED_USER_IDS" envSeparator:" "`
	VisionBackend             string        `env:"VISION_BACKEND" envDefault:"moondream"`
	MoondreamURL              string        `env:"MOONDREAM_URL" envDefault:"http://localhost:2020/v1"`
	OpenAIToken               string        `env:"OPEN_AI_TOKEN"`
	ImageDownloadDir          string        `env:"IMAGE_DOWNLOAD_DIR" envDefault:"tmp/images"`
	InferencePoolSize         int           `env:"INFERENCE_POOL_SIZE" envDefault:"0"`
	InferenceTimeout          time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"2m"`
	AutoVisionDefault         bool          `env:"AUTO_VISION_DEFAULT" envDefault:"false"`
	MetricsAddr               string        `env:"METRICS_ADDR" envDefault:":2112"`
	PgURL                     string        `env:"DATABASE_URL"`
	PgHost                    string        `env:"DB_HOST" envDefault:"localhost:65432"`
}

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	telegramClient, err := telegram.NewClient(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}
	authenticator := auth.NewAuthenticator(cfg.TelegramAuthorizedUserIDs)

	db, err := database.NewPostgres(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	model, err := setupVisionModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating vision model client: %w", err)
	}

	modeRepository := repository.NewModeRepository(cfg.AutoVisionDefault)
	descriptionsRepository := repository.NewDescriptionsRepository(db)

	inferencePool := executor.NewPool(cfg.InferencePoolSize)

	responseCh := make(chan domain.Response)

	visionService := services.NewVisionService(
		telegramClient,
		storage.NewImageStore(cfg.ImageDownloadDir),
		converter.NewImageFit(),
		model,
		inferencePool,
		modeRepository,
		descriptionsRepository,
		cfg.InferenceTimeout,
		responseCh,
	)

	chatService := services.NewChatService(
		modeRepository,
		descriptionsRepository,
		model.Model(),
		responseCh,
	)

	handler := telegram.NewHandler(visionService, chatService)

	listener, err := workers.NewTelegramUpdateListener(
		telegramClient,
		authenticator,
		handler,
		responseCh,
	)
	if err != nil {
		return nil, fmt.Errorf("creating telegram update listener: %w", err)
	}

	metricsServer, err := workers.NewMetricsServer(cfg.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("creating metrics server: %w", err)
	}

	return workers.Group{inferencePool, listener, metricsServer}, nil
}

func setupVisionModel(cfg Config) (services.VisionModel, error) {
	switch cfg.VisionBackend {
	case "openai":
		return openai.NewClient(cfg.OpenAIToken)
	case "moondream":
		return moondream.NewClient(cfg.MoondreamURL), nil
	default:
		return nil, fmt.Errorf("unknown vision backend: %q", cfg.VisionBackend)
	}
}
