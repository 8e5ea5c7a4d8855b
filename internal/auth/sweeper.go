package auth

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// TokenSweeper periodically removes expired refresh tokens so abandoned logins
// do not pile up in the store.
type TokenSweeper struct {
	tokens RefreshTokenStore
	logger *zap.SugaredLogger
}

func NewTokenSweeper(tokens *RefreshTokenRepository, logger *zap.SugaredLogger) *TokenSweeper {
	return &TokenSweeper{tokens: tokens, logger: logger}
}

// StartSweeper runs the background cleanup loop under the fx lifecycle.
func (s *TokenSweeper) StartSweeper(lc fx.Lifecycle) {
	ticker := time.NewTicker(1 * time.Hour)
	done := make(chan bool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("Starting refresh token sweeper (hourly)")
			go func() {
				sweepCtx := context.Background()
				for {
					select {
					case <-ticker.C:
						deleted, err := s.tokens.DeleteExpired(sweepCtx, time.Now())
						if err != nil {
							s.logger.Errorw("refresh token sweep failed", "error", err)
							continue
						}
						if deleted > 0 {
							s.logger.Infow("pruned expired refresh tokens", "count", deleted)
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("Stopping refresh token sweeper")
			ticker.Stop()
			done <- true
			return nil
		},
	})
}
