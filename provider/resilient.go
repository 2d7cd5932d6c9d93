package provider

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/resilience"
)

// ResilienceConfig bundles optional resilience policies for an engine.
// Nil fields are skipped; the zero value is a passthrough.
type ResilienceConfig struct {
	Retry          *resilience.RetryConfig          `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// IsEmpty returns true if no policy is configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.Retry == nil && c.CircuitBreaker == nil
}

// ResilienceState holds the primitives built from a ResilienceConfig.
type ResilienceState struct {
	cb       *resilience.CircuitBreaker
	retryCfg *resilience.RetryConfig
}

// BuildResilience creates the primitives for cfg. The breaker is named
// after the engine it guards; trips and retries are logged.
func BuildResilience(name string, cfg ResilienceConfig) *ResilienceState {
	if cfg.IsEmpty() {
		return nil
	}
	log := logger.WithComponent("resilience")
	s := &ResilienceState{}
	if cfg.Retry != nil {
		retryCfg := *cfg.Retry
		retryCfg.OnRetry = func(attempt int, err error, wait time.Duration) {
			log.Warn("Retrying engine call", logger.Fields(
				logger.FieldProvider, name,
				"attempt", attempt,
				"backoff_ms", wait.Milliseconds(),
				logger.FieldError, err.Error(),
			))
		}
		s.retryCfg = &retryCfg
	}
	if cfg.CircuitBreaker != nil {
		cbCfg := *cfg.CircuitBreaker
		cbCfg.Name = name
		cbCfg.OnStateChange = func(name string, from, to resilience.State) {
			log.Warn("Circuit breaker state changed", logger.Fields(
				logger.FieldProvider, name, "from", from.String(), "to", to.String(),
			))
		}
		s.cb = resilience.NewCircuitBreaker(cbCfg)
	}
	return s
}

// WithResilience wraps p so each Execute runs CircuitBreaker → Retry → p.
func WithResilience[I, O any](p RequestResponse[I, O], cfg ResilienceConfig) RequestResponse[I, O] {
	if cfg.IsEmpty() {
		return p
	}
	return &resilientRR[I, O]{inner: p, state: BuildResilience(p.Name(), cfg)}
}

type resilientRR[I, O any] struct {
	inner RequestResponse[I, O]
	state *ResilienceState
}

func (r *resilientRR[I, O]) Name() string                         { return r.inner.Name() }
func (r *resilientRR[I, O]) IsAvailable(ctx context.Context) bool { return r.inner.IsAvailable(ctx) }

func (r *resilientRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return ExecuteWithResilience(ctx, r.inner.Name(), r.state, func() (O, error) {
		return r.inner.Execute(ctx, input)
	})
}

// ExecuteWithResilience runs fn through the breaker and retry policy in s.
// A nil state calls fn directly.
func ExecuteWithResilience[T any](ctx context.Context, name string, s *ResilienceState, fn func() (T, error)) (T, error) {
	if s == nil {
		return fn()
	}

	call := fn
	if s.retryCfg != nil {
		retryCfg := *s.retryCfg
		call = func() (T, error) {
			return resilience.Retry(ctx, retryCfg, fn)
		}
	}

	if s.cb == nil {
		return call()
	}
	var result T
	var callErr error
	cbErr := s.cb.Execute(func() error {
		result, callErr = call()
		return callErr
	})
	if cbErr != nil && callErr == nil {
		return result, wrapResilienceError(name, cbErr)
	}
	return result, callErr
}

func wrapResilienceError(name string, err error) error {
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return apperrors.ServiceUnavailable(name).WithCause(err).WithDetail("reason", "circuit open")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout(name).WithCause(err)
	default:
		return err
	}
}
