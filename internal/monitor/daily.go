package monitor

import (
	"context"

	"hotwatch/internal/notify"
	"hotwatch/internal/utils"
)

// checkDailyReset clears the change counter on the first cycle of a new calendar day
func (m *Monitor) checkDailyReset(ctx context.Context, st *State) {
	now := m.clock.Now()
	if utils.SameDay(now, st.LastResetDate) {
		return
	}

	st.DailyChanges = 0
	st.LastResetDate = utils.StartOfDay(now)
	m.notifier.Notify(ctx, notify.DailyReset())
	m.events.Log("[✓] Daily ISP change counter reset.")
}
