// Package retry runs operations with exponential backoff and full jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	gax "github.com/googleapis/gax-go/v2"
)

// Config holds retry configuration
type Config struct {
	// MaxRetries is the number of attempts after the first one
	MaxRetries int
	// InitialBackoff is the upper bound of the first delay
	InitialBackoff time.Duration
	// MaxBackoff caps every delay
	MaxBackoff time.Duration
	// Multiplier grows the delay bound after each retry
	Multiplier float64
}

// DefaultConfig returns the configuration used for YouTube API calls
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Multiplier:     2.0,
	}
}

// backoff builds the delay sequence for one Do call; each pause is drawn from (0, bound]
func (c Config) backoff() *gax.Backoff {
	return &gax.Backoff{
		Initial:    c.InitialBackoff,
		Max:        c.MaxBackoff,
		Multiplier: c.Multiplier,
	}
}

// Classifier reports whether err is worth another attempt
type Classifier func(error) bool

// ErrPermanent marks errors that must not be retried
var ErrPermanent = errors.New("permanent error")

// Permanent wraps err so that IsRetryable rejects it
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// IsRetryable is the default classifier: context and permanent errors stop, anything else retries
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, ErrPermanent)
}

// Do calls fn until it succeeds, the classifier rejects its error, retries run out or ctx ends
func Do(ctx context.Context, cfg Config, classifier Classifier, fn func(context.Context) error) error {
	if classifier == nil {
		classifier = IsRetryable
	}

	var lastErr error
	bo := cfg.backoff()

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classifier(err) {
			return err
		}

		if attempt == cfg.MaxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		}

		if err := gax.Sleep(ctx, bo.Pause()); err != nil {
			return fmt.Errorf("%w (last error: %v)", err, lastErr)
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
