package utils

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var version = "dev"

// Version returns the build version, set with -ldflags "-X github.com/lilcord/lilbot/pkg/utils.version=...".
func Version() string {
	return version
}

// LimitMessage truncates s to at most limit runes, marking the cut.
func LimitMessage(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	const mark = "…"
	return string(r[:limit-1]) + mark
}

func WithRetry(ctx context.Context, logger *zap.Logger, maxRetryCount int, fn func(ctx context.Context) error) error {
	const (
		initialBackoff = 1 * time.Second
		maxBackoff     = 60 * time.Second
	)

	var err error
	backoff := initialBackoff
	for i := 0; i < maxRetryCount; i++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if i == maxRetryCount-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logger.Warn("encountered error, retrying", zap.Duration("backoff", backoff), zap.Error(err))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff = min(backoff*2, maxBackoff)
	}

	return fmt.Errorf("max retry count %d reached: %w", maxRetryCount, err)
}
