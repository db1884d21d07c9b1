package utils

import (
	"context"
	"errors"
	"time"
)

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Retry вызывает fn, пока она не вернет nil, не кончатся попытки или не отменится ctx.
// Ошибки из permanent не ретраятся и возвращаются сразу.
func Retry(ctx context.Context, cfg RetryConfig, fn func() error, permanent ...error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = 2.0
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Millisecond * 100
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		for _, p := range permanent {
			if errors.Is(err, p) {
				return err
			}
		}

		if attempt == cfg.MaxAttempts {
			return err
		}

		if sleepErr := Sleep(ctx, Backoff(cfg, attempt+1)); sleepErr != nil {
			return errors.Join(err, sleepErr)
		}
	}
}

// Backoff возвращает задержку перед попыткой номер attempt (с 2).
func Backoff(cfg RetryConfig, attempt int) time.Duration {
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = 2.0
	}
	delay := cfg.InitialDelay
	for i := 2; i < attempt; i++ {
		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			return cfg.MaxDelay
		}
	}
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return delay
}

// Sleep ждет d или отмены ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
