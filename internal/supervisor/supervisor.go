// Package supervisor keeps a long running function alive, restarting it
// with fresh state after it panics or fails.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"hotwatch/internal/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRestartsExhausted is returned once Policy.MaxRestarts crashes have been restarted
var ErrRestartsExhausted = errors.New("restart budget exhausted")

// RunFunc is one supervised run. It should block until ctx is done.
type RunFunc func(ctx context.Context) error

// Crash describes a failed run.
type Crash struct {
	Err     error
	Stack   []byte
	Attempt int
	Session string
}

// CrashHandler is called after every crash, before the backoff.
type CrashHandler func(ctx context.Context, c Crash)

// Supervisor runs a RunFunc under a restart Policy.
type Supervisor struct {
	policy   Policy
	clock    clock.Clock
	handlers []CrashHandler
	logger   *zap.Logger
}

// Option configures a Supervisor
type Option func(*Supervisor)

// WithClock overrides the clock used for backoff
func WithClock(c clock.Clock) Option {
	return func(s *Supervisor) { s.clock = c }
}

// WithCrashHandler registers a handler invoked on every crash
func WithCrashHandler(h CrashHandler) Option {
	return func(s *Supervisor) { s.handlers = append(s.handlers, h) }
}

// New creates a supervisor
func New(policy Policy, logger *zap.Logger, opts ...Option) *Supervisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Supervisor{
		policy: policy,
		clock:  clock.Real{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run calls fn until ctx is done. A run that panics or returns an error
// while ctx is still live is a crash: it is logged, handed to the crash
// handlers and restarted after the backoff.
func (s *Supervisor) Run(ctx context.Context, fn RunFunc) error {
	if err := s.policy.Validate(); err != nil {
		return fmt.Errorf("invalid restart policy: %w", err)
	}

	for attempt := 1; ; attempt++ {
		session := uuid.NewString()
		log := s.logger.With(zap.String("session", session), zap.Int("attempt", attempt))
		log.Info("Run started")

		stack, err := s.runOnce(ctx, fn)
		if ctx.Err() != nil {
			log.Info("Run stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		}
		if err == nil {
			log.Info("Run finished")
			return nil
		}

		log.Error("Run crashed", zap.Error(err))
		crash := Crash{Err: err, Stack: stack, Attempt: attempt, Session: session}
		for _, h := range s.handlers {
			h(ctx, crash)
		}

		if s.policy.MaxRestarts > 0 && attempt > s.policy.MaxRestarts {
			return fmt.Errorf("%w after %d runs: %v", ErrRestartsExhausted, attempt, err)
		}

		log.Info("Restarting", zap.Duration("backoff", s.policy.Backoff))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.policy.Backoff):
		}
	}
}

// runOnce calls fn, converting a panic into an error with its stack
func (s *Supervisor) runOnce(ctx context.Context, fn RunFunc) (stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack = debug.Stack()
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return nil, fn(ctx)
}
