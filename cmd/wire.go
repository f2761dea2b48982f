package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bnema/heihealth-cli/internal/adapters/backend"
	tomlrepo "github.com/bnema/heihealth-cli/internal/adapters/repo/toml"
	"github.com/bnema/heihealth-cli/internal/application"
	"github.com/bnema/heihealth-cli/internal/config"
	"github.com/bnema/heihealth-cli/internal/ports"
)

type app struct {
	controller *application.SessionController
	config     config.Config
	logger     *zap.Logger
	level      zap.AtomicLevel
	now        func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	configLevel, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	level := zap.NewAtomicLevelAt(configLevel)
	logger := newLogger(level)

	client := backend.Client{
		BaseURL:        cfg.API.BaseURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.API.Timeout,
		Logger:         logger.Named("backend"),
	}

	repo, err := tomlrepo.NewSessionRepository(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	clock := ports.SystemClock{}
	aggregator := application.NewAggregator(client, logger.Named("aggregator"))
	controller := application.NewSessionController(client, repo, aggregator,
		application.WithClock(clock),
		application.WithLogger(logger.Named("session")),
	)

	// An unreadable session file leaves the CLI logged out; logout or login rewrites it.
	if err := controller.Restore(context.Background()); err != nil {
		logger.Warn("discarding stored session", zap.String("path", repo.Path()), zap.Error(err))
	}

	return &app{
		controller: controller,
		config:     cfg,
		logger:     logger,
		level:      level,
		now:        clock.Now,
	}, nil
}

func newLogger(level zap.AtomicLevel) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core).Named("hh")
}
