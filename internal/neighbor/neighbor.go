// Package neighbor reads the host neighbor (ARP) table to find devices on the hotspot.
package neighbor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"hotwatch/internal/types"
	"hotwatch/internal/utils"

	"go.uber.org/zap"
)

// entryPattern matches `ip neigh` lines with a link-layer address in a reachable-class state
var entryPattern = regexp.MustCompile(
	`^(\d+\.\d+\.\d+\.\d+)\s+dev\s+\S+\s+lladdr\s+[\da-fA-F:]+\s+(?:router\s+)?(REACHABLE|STALE|DELAY|PROBE)\b`)

// Runner executes a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Scanner lists devices using a neighbor-table command
type Scanner struct {
	command []string
	run     Runner
	logger  *zap.Logger
}

// NewScanner creates a scanner for command, e.g. ["ip", "neigh"]
func NewScanner(command []string, logger *zap.Logger) *Scanner {
	if len(command) == 0 {
		command = []string{"ip", "neigh"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !utils.IsLinux() && command[0] == "ip" {
		logger.Warn("The ip command is only available on Linux", zap.Strings("command", command))
	}
	return &Scanner{
		command: command,
		run:     execRunner,
		logger:  logger,
	}
}

// WithRunner replaces the command runner
func (s *Scanner) WithRunner(run Runner) *Scanner {
	s.run = run
	return s
}

// Devices returns the addresses currently in a reachable-class state
func (s *Scanner) Devices(ctx context.Context) (types.DeviceSet, error) {
	out, err := s.run(ctx, s.command[0], s.command[1:]...)
	if err != nil {
		return types.NewDeviceSet(), fmt.Errorf("failed to run %s: %w", strings.Join(s.command, " "), err)
	}

	devices := Parse(out)
	s.logger.Debug("Neighbor table scanned", zap.Int("devices", len(devices)))
	return devices, nil
}

// Parse extracts reachable-class IPv4 neighbors from `ip neigh` output
func Parse(out []byte) types.DeviceSet {
	devices := types.NewDeviceSet()

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := entryPattern.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil || !utils.IsValidIP(m[1]) {
			continue
		}
		devices.Add(m[1])
	}

	return devices
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
