package supervisor

import (
	"errors"
	"fmt"
	"time"
)

// DefaultBackoff is the pause between a crash and the next run
const DefaultBackoff = 5 * time.Second

// Policy defines how crashed runs are restarted.
type Policy struct {
	MaxRestarts int           // 0 restarts forever
	Backoff     time.Duration // Fixed sleep before restarting
}

// DefaultPolicy restarts forever after a fixed five second pause.
func DefaultPolicy() Policy {
	return Policy{Backoff: DefaultBackoff}
}

// Validate validates the policy.
func (p Policy) Validate() error {
	if p.MaxRestarts < 0 {
		return errors.New("MaxRestarts cannot be negative")
	}
	if p.Backoff < 0 {
		return errors.New("Backoff cannot be negative")
	}
	return nil
}

// String describes the policy for logs.
func (p Policy) String() string {
	restarts := "unlimited"
	if p.MaxRestarts > 0 {
		restarts = fmt.Sprint(p.MaxRestarts)
	}
	return fmt.Sprintf("max_restarts=%s backoff=%s", restarts, p.Backoff)
}
