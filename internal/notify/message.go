package notify

import (
	"fmt"
	"strings"
	"time"

	"hotwatch/internal/types"
	"hotwatch/internal/version"
)

// Kind identifies the transition a message reports
type Kind string

const (
	KindStarted      Kind = "started"
	KindNewDevice    Kind = "new_device"
	KindReconnected  Kind = "reconnected"
	KindDisconnected Kind = "disconnected"
	KindRestored     Kind = "connectivity_restored"
	KindChange       Kind = "change_detected"
	KindDailyReset   Kind = "daily_reset"
	KindCrashed      Kind = "crashed"
)

// Style controls how a field value is rendered
type Style int

const (
	StylePlain Style = iota
	StyleCode
	StyleBold
	StyleItalic
)

// Field is one labeled line of a message
type Field struct {
	Icon  string
	Label string
	Value string
	Style Style
}

// Section groups fields under a heading, rendered as a bullet list
type Section struct {
	Icon    string
	Heading string
	Fields  []Field
}

// Message is a structured alert, independent of how it is delivered
type Message struct {
	Kind     Kind
	Icon     string
	Title    string
	Fields   []Field
	Sections []Section
	Footer   []Field
}

// ChangeTimeLayout is the timestamp layout shown in change alerts
const ChangeTimeLayout = "02-01-2006 15:04:05"

func addressField(addr string) Field {
	return Field{Icon: "📡", Label: "IP Address", Value: addr, Style: StyleCode}
}

// Started reports that a monitoring run began
func Started() Message {
	return Message{
		Kind:   KindStarted,
		Icon:   "🚨",
		Title:  version.AppName + " monitor started!",
		Footer: []Field{{Value: version.AppName + " " + version.Version, Style: StyleItalic}},
	}
}

// NewDevice reports a device seen for the first time
func NewDevice(addr string) Message {
	return Message{
		Kind:   KindNewDevice,
		Icon:   "📲",
		Title:  "new device connected",
		Fields: []Field{addressField(addr)},
	}
}

// Reconnected reports a device coming back after being offline for offline
func Reconnected(addr, offline string) Message {
	return Message{
		Kind:  KindReconnected,
		Icon:  "🔄",
		Title: "device reconnected",
		Fields: []Field{
			addressField(addr),
			{Icon: "⏱️", Label: "Offline For", Value: offline, Style: StyleItalic},
		},
	}
}

// Disconnected reports a device leaving the network
func Disconnected(addr string) Message {
	return Message{
		Kind:   KindDisconnected,
		Icon:   "❌",
		Title:  "device disconnected",
		Fields: []Field{addressField(addr)},
	}
}

// ConnectivityRestored reports the lookup service answering again
func ConnectivityRestored(current types.Identity, offline string) Message {
	return Message{
		Kind:  KindRestored,
		Icon:  "✅",
		Title: "internet connection restored",
		Fields: []Field{
			addressField(current.Address),
			{Icon: "🏢", Label: "ISP", Value: current.Provider, Style: StyleBold},
			{Icon: "⏱️", Label: "Offline For", Value: offline, Style: StyleItalic},
		},
	}
}

// ChangeReason lists which identity fields differ, e.g. "IP and ISP"
func ChangeReason(prev, cur types.Identity) string {
	var reasons []string
	if prev.Address != cur.Address {
		reasons = append(reasons, "IP")
	}
	if prev.Provider != cur.Provider {
		reasons = append(reasons, "ISP")
	}
	return strings.Join(reasons, " and ")
}

func identityFields(id types.Identity) []Field {
	return []Field{
		{Label: "IP ", Value: id.Address, Style: StyleCode},
		{Label: "ISP", Value: id.Provider, Style: StyleBold},
	}
}

// ChangeDetected reports an address or provider change and today's running total
func ChangeDetected(prev, cur types.Identity, at time.Time, today int) Message {
	return Message{
		Kind:  KindChange,
		Icon:  "🌐",
		Title: ChangeReason(prev, cur) + " change detected",
		Fields: []Field{
			{Icon: "🕒", Label: "Time", Value: at.Format(ChangeTimeLayout)},
		},
		Sections: []Section{
			{Icon: "🔁", Heading: "Previous", Fields: identityFields(prev)},
			{Icon: "✅", Heading: "Current", Fields: identityFields(cur)},
		},
		Footer: []Field{
			{Icon: "📊", Label: "Total changes today", Value: fmt.Sprint(today), Style: StyleBold},
		},
	}
}

// DailyReset reports that the daily change counter was cleared
func DailyReset() Message {
	return Message{
		Kind:  KindDailyReset,
		Icon:  "🕛",
		Title: "daily ISP change counter reset (00:00)",
	}
}

// Crashed reports a monitor crash ahead of a restart
func Crashed(err error, session string) Message {
	m := Message{
		Kind:  KindCrashed,
		Icon:  "⚠️",
		Title: version.AppName + " monitor crashed! Restarting...",
	}
	if err != nil {
		m.Fields = append(m.Fields, Field{Icon: "💥", Label: "Error", Value: err.Error(), Style: StyleCode})
	}
	if session != "" {
		m.Fields = append(m.Fields, Field{Icon: "🆔", Label: "Session", Value: session, Style: StyleCode})
	}
	return m
}
