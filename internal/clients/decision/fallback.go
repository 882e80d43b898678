package decision

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// DefaultTimeout bounds a single call to the primary provider
const DefaultTimeout = 10 * time.Second

// FallbackConfig configures WithFallback
type FallbackConfig struct {
	// Primary may be nil, in which case every decision comes from Fallback
	Primary  Provider
	Fallback Provider
	Timeout  time.Duration
}

// Validate ensures all required dependencies are provided
func (c *FallbackConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Fallback == nil {
		vb.RequiredField("Fallback")
	}
	if c.Timeout < 0 {
		vb.InvalidField("Timeout", "must not be negative")
	}

	return vb.Build()
}

// FallbackProvider asks the primary provider first and silently switches to
// the fallback when the primary errors, times out or proposes an illegal
// move. It never retries the primary within one call.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	timeout  time.Duration
}

var _ Provider = (*FallbackProvider)(nil)

// WithFallback builds a FallbackProvider
func WithFallback(cfg *FallbackConfig) (*FallbackProvider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &FallbackProvider{
		primary:  cfg.Primary,
		fallback: cfg.Fallback,
		timeout:  timeout,
	}, nil
}

// Decide resolves a decision. Errors only come from the fallback itself.
func (p *FallbackProvider) Decide(ctx context.Context, input *DecideInput) (*Decision, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if p.primary != nil {
		decision, err := p.askPrimary(ctx, input)
		if err == nil {
			return decision, nil
		}

		slog.Warn("Decision provider failed, using fallback",
			"character_id", characterID(input),
			"code", errors.GetCode(err),
			"error", err,
		)
	}

	return p.fallback.Decide(ctx, input)
}

func (p *FallbackProvider) askPrimary(ctx context.Context, input *DecideInput) (*Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	decision, err := p.primary.Decide(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "decision provider timed out")
		}
		return nil, err
	}

	return Check(decision, input.PossibleMoves)
}

func characterID(input *DecideInput) string {
	if input.Character == nil {
		return ""
	}
	return input.Character.ID
}
