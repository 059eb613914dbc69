package monitor

import (
	"time"

	"hotwatch/internal/types"
	"hotwatch/internal/utils"
)

// State is the bookkeeping of a single run. It is never persisted.
type State struct {
	// Devices is the device set from the latest poll
	Devices types.DeviceSet
	// Last is the last known public identity
	Last types.Identity
	// PendingDisconnect maps departed identifiers to their departure time
	PendingDisconnect map[string]time.Time
	// LastAlert maps identifiers to the time of their last alert
	LastAlert map[string]time.Time
	// OutageStart is set while the lookup service is failing
	OutageStart *time.Time
	// DailyChanges counts identity changes since LastResetDate
	DailyChanges int
	// LastResetDate is local midnight of the day the counter was last reset
	LastResetDate time.Time
}

// NewState creates an empty state seeded with the baseline identity
func NewState(now time.Time, baseline types.Identity) *State {
	return &State{
		Devices:           types.NewDeviceSet(),
		Last:              baseline,
		PendingDisconnect: make(map[string]time.Time),
		LastAlert:         make(map[string]time.Time),
		LastResetDate:     utils.StartOfDay(now),
	}
}

// InOutage reports whether an outage is in progress
func (s *State) InOutage() bool {
	return s.OutageStart != nil
}
