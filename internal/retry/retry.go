// Package retry runs remote calls with exponential backoff.
package retry

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// Config holds the configuration for retry logic
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultConfig returns the retry policy used by the remote adapters. It is
// short because the classifier bounds every reasoner call with its own
// timeout.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      2,
		BaseDelay:       100 * time.Millisecond,
		MaxDelay:        2 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// ErrorChecker decides whether an attempt should be retried
type ErrorChecker func(err error, statusCode int, responseBody []byte) bool

// Func is one attempt. The status code and body are passed to the
// ErrorChecker.
type Func[T any] func(attempt int) (result T, statusCode int, responseBody []byte, err error)

// Options configures retry behavior
type Options struct {
	Config       Config
	ErrorChecker ErrorChecker
	Logger       *zap.Logger
	APIName      string
}

// Delay computes the wait before retry number attempt (0-based).
func (c Config) Delay(attempt int) time.Duration {
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(c.BackoffMultiple, float64(attempt)))
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Execute calls fn until it succeeds, the error is not retryable, the
// attempts run out, or ctx is done.
func Execute[T any](ctx context.Context, opts Options, fn Func[T]) (T, error) {
	var zero T
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("api", opts.APIName))

	var lastErr error
	var lastStatusCode int
	var lastResponseBody []byte

	for attempt := 0; attempt <= opts.Config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := opts.Config.Delay(attempt - 1)
			log.Debug("Retrying request",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", opts.Config.MaxRetries+1),
				zap.Duration("delay", delay),
			)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		result, statusCode, responseBody, err := fn(attempt)
		lastErr = err
		lastStatusCode = statusCode
		lastResponseBody = responseBody

		retryable := opts.ErrorChecker != nil && opts.ErrorChecker(err, statusCode, responseBody)
		if retryable && attempt < opts.Config.MaxRetries {
			log.Warn("Retryable error",
				zap.Int("attempt", attempt+1),
				zap.Int("status", statusCode),
				zap.Error(err),
			)
			continue
		}
		if retryable {
			break
		}

		if err == nil {
			if attempt > 0 {
				log.Info("Request succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return result, nil
		}

		// Non-retryable error
		return zero, err
	}

	if lastErr != nil {
		return zero, lastErr
	}

	return zero, &ExhaustedError{
		APIName:        opts.APIName,
		MaxAttempts:    opts.Config.MaxRetries + 1,
		LastStatusCode: lastStatusCode,
		LastResponse:   lastResponseBody,
	}
}

// ExhaustedError is returned when every attempt produced a retryable
// response without an error value.
type ExhaustedError struct {
	APIName        string
	MaxAttempts    int
	LastStatusCode int
	LastResponse   []byte
}

func (e *ExhaustedError) Error() string {
	return "retry attempts exhausted for " + e.APIName + " API"
}
