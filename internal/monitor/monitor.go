// Package monitor runs the presence and connectivity polling loop.
//
// A Monitor owns the collaborators; all per-run bookkeeping lives in a
// State created when a run starts, so a restarted run always begins fresh.
package monitor

import (
	"context"
	"time"

	"hotwatch/internal/clock"
	"hotwatch/internal/notify"
	"hotwatch/internal/types"

	"go.uber.org/zap"
)

const (
	// PollInterval is the normal cadence between cycles
	PollInterval = 10 * time.Second
	// OutageRetryInterval is used while the lookup service keeps failing
	OutageRetryInterval = 5 * time.Second
	// AlertCooldown is the minimum time between two alerts for one identifier
	AlertCooldown = 60 * time.Second
)

// DeviceSource lists devices currently reachable on the local segment
type DeviceSource interface {
	Devices(ctx context.Context) (types.DeviceSet, error)
}

// IdentitySource resolves the public address and provider
type IdentitySource interface {
	Lookup(ctx context.Context) (types.Identity, error)
}

// Notifier relays alerts; it must not fail the caller
type Notifier interface {
	Notify(ctx context.Context, m notify.Message)
}

// EventLogger appends lines to the event log
type EventLogger interface {
	Log(format string, v ...any)
}

// Config wires a Monitor to its collaborators
type Config struct {
	Devices  DeviceSource
	Identity IdentitySource
	Notifier Notifier
	Events   EventLogger
	// Clock defaults to the system clock
	Clock clock.Clock
}

// Monitor tracks device presence, connectivity and provider identity
type Monitor struct {
	devices  DeviceSource
	identity IdentitySource
	notifier Notifier
	events   EventLogger
	clock    clock.Clock
	logger   *zap.Logger
}

// New creates a monitor
func New(cfg Config, logger *zap.Logger) *Monitor {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		devices:  cfg.Devices,
		identity: cfg.Identity,
		notifier: cfg.Notifier,
		events:   cfg.Events,
		clock:    cfg.Clock,
		logger:   logger,
	}
}

// Start begins a run: it resolves the baseline identity, announces the
// start and returns a fresh State.
func (m *Monitor) Start(ctx context.Context) *State {
	baseline, err := m.lookup(ctx)
	st := NewState(m.clock.Now(), baseline)
	if err != nil {
		return st
	}

	m.logger.Info("Starting device and connection monitoring",
		zap.String("ip", baseline.Address),
		zap.String("isp", baseline.Provider))
	m.notifier.Notify(ctx, notify.Started())

	return st
}

// Run starts a fresh run and polls until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) error {
	st := m.Start(ctx)

	for {
		wait := m.Cycle(ctx, st)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.clock.After(wait):
		}
	}
}

// Cycle performs one poll: devices, then connectivity, then the daily
// reset check. It returns how long to wait before the next cycle.
// If ctx is cancelled while polling, the cycle is abandoned without
// touching st and zero is returned.
func (m *Monitor) Cycle(ctx context.Context, st *State) time.Duration {
	if err := m.trackDevices(ctx, st); err != nil {
		return 0
	}

	healthy, err := m.trackConnectivity(ctx, st)
	if err != nil {
		return 0
	}
	if !healthy {
		return OutageRetryInterval
	}

	m.checkDailyReset(ctx, st)
	return PollInterval
}

// HandleCrash records a failed run in the event log and sends a crash alert
func (m *Monitor) HandleCrash(ctx context.Context, err error, trace []byte, session string) {
	m.events.Log("[CRASH] %v", err)
	if len(trace) > 0 {
		m.events.Log("%s", trace)
	}
	m.notifier.Notify(ctx, notify.Crashed(err, session))
}

// lookup queries the identity source, substituting the unknown sentinel on
// error. The only error returned is ctx's, once it is done.
func (m *Monitor) lookup(ctx context.Context) (types.Identity, error) {
	id, err := m.identity.Lookup(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return types.UnknownIdentity, ctx.Err()
		}
		m.events.Log("[ERROR] Failed to fetch ISP info: %v", err)
		return types.UnknownIdentity, nil
	}
	return id, nil
}
