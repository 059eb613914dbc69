package monitor

import (
	"context"
	"time"

	"hotwatch/internal/notify"
	"hotwatch/internal/types"
	"hotwatch/internal/utils"

	"go.uber.org/zap"
)

// Diff returns the identifiers that arrived (cur - prev) and departed (prev - cur)
func Diff(prev, cur types.DeviceSet) (arrived, departed []string) {
	return cur.Minus(prev), prev.Minus(cur)
}

// trackDevices polls the neighbor table and reports arrivals and departures.
// Bookkeeping and the event log line happen for every event; the cooldown
// only gates the outbound alert. It returns ctx's error, leaving st
// untouched, when the poll was cut short by cancellation.
func (m *Monitor) trackDevices(ctx context.Context, st *State) error {
	current, err := m.devices.Devices(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.events.Log("[ERROR] Failed to check devices: %v", err)
		current = types.NewDeviceSet()
	}
	if current == nil {
		current = types.NewDeviceSet()
	}

	arrived, departed := Diff(st.Devices, current)

	for _, addr := range arrived {
		now := m.clock.Now()
		since, wasPending := st.PendingDisconnect[addr]
		delete(st.PendingDisconnect, addr)
		m.events.Log("[+] Connected: %s", addr)

		if m.inCooldown(st, addr, now) {
			m.logger.Debug("Arrival alert suppressed", zap.String("ip", addr))
			continue
		}

		msg := notify.NewDevice(addr)
		if wasPending {
			msg = notify.Reconnected(addr, utils.FormatDuration(now.Sub(since)))
		}
		m.notifier.Notify(ctx, msg)
		st.LastAlert[addr] = now
	}

	for _, addr := range departed {
		now := m.clock.Now()
		st.PendingDisconnect[addr] = now
		m.events.Log("[-] Disconnected: %s", addr)

		if m.inCooldown(st, addr, now) {
			m.logger.Debug("Departure alert suppressed", zap.String("ip", addr))
			continue
		}

		m.notifier.Notify(ctx, notify.Disconnected(addr))
		st.LastAlert[addr] = now
	}

	st.Devices = current
	return nil
}

// inCooldown reports whether addr was alerted on less than AlertCooldown ago
func (m *Monitor) inCooldown(st *State, addr string, now time.Time) bool {
	last, ok := st.LastAlert[addr]
	return ok && now.Sub(last) < AlertCooldown
}
