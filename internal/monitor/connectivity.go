package monitor

import (
	"context"

	"hotwatch/internal/notify"
	"hotwatch/internal/utils"

	"go.uber.org/zap"
)

// trackConnectivity looks up the public identity. It reports false while
// the lookup fails, in which case the rest of the cycle is skipped.
func (m *Monitor) trackConnectivity(ctx context.Context, st *State) (bool, error) {
	current, err := m.lookup(ctx)
	if err != nil {
		return false, err
	}
	now := m.clock.Now()

	if !current.Known() {
		if !st.InOutage() {
			st.OutageStart = &now
			m.events.Log("[✖] Internet connection lost.")
			m.logger.Warn("Internet connection lost")
		}
		return false, nil
	}

	if st.InOutage() {
		offline := utils.FormatDuration(now.Sub(*st.OutageStart))
		m.notifier.Notify(ctx, notify.ConnectivityRestored(current, offline))
		m.events.Log("[✓] Internet restored after %s", offline)
		st.OutageStart = nil
	}

	if current != st.Last {
		reason := notify.ChangeReason(st.Last, current)
		st.DailyChanges++

		m.notifier.Notify(ctx, notify.ChangeDetected(st.Last, current, now, st.DailyChanges))
		m.events.Log("[↻] %s: %s → %s / %s → %s",
			reason, st.Last.Provider, current.Provider, st.Last.Address, current.Address)
		m.logger.Info("Identity change detected",
			zap.String("reason", reason),
			zap.String("ip", current.Address),
			zap.String("isp", current.Provider),
			zap.Int("changes_today", st.DailyChanges))

		st.Last = current
	}

	return true, nil
}
