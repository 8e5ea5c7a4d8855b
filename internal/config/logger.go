package config

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the process-wide logger. Development gets the console
// encoder, production structured JSON.
func NewLogger(lc fx.Lifecycle, cfg *AppConfig) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})

	return logger.Sugar(), nil
}
