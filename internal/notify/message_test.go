package notify

import (
	"errors"
	"testing"
	"time"

	"hotwatch/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestRenderNewDevice(t *testing.T) {
	got := NewDevice("10.0.0.2").Render()

	assert.Equal(t, "📲 *New Device Connected*\n"+Separator+"\n📡 IP Address : `10.0.0.2`", got)
}

func TestRenderReconnected(t *testing.T) {
	got := Reconnected("10.0.0.2", "2m 5s").Render()

	assert.Equal(t,
		"🔄 *Device Reconnected*\n"+Separator+"\n"+
			"📡 IP Address : `10.0.0.2`\n"+
			"⏱️ Offline For : _2m 5s_",
		got)
}

func TestRenderTitleOnly(t *testing.T) {
	assert.Equal(t, "🕛 *Daily ISP Change Counter Reset (00:00)*", DailyReset().Render())
}

func TestRenderChangeDetected(t *testing.T) {
	prev := types.Identity{Address: "1.2.3.4", Provider: "ISP-A"}
	cur := types.Identity{Address: "1.2.3.4", Provider: "ISP-B"}
	at := time.Date(2024, 5, 17, 8, 3, 9, 0, time.UTC)

	m := ChangeDetected(prev, cur, at, 3)
	assert.Equal(t, KindChange, m.Kind)

	assert.Equal(t,
		"🌐 *ISP Change Detected*\n"+Separator+"\n"+
			"🕒 Time : 17-05-2024 08:03:09\n"+
			"🔁 Previous :\n"+
			"  • IP  : `1.2.3.4`\n"+
			"  • ISP : *ISP-A*\n"+
			"\n"+
			"✅ Current :\n"+
			"  • IP  : `1.2.3.4`\n"+
			"  • ISP : *ISP-B*\n"+
			"\n"+
			"📊 Total changes today : *3*",
		m.Render())
}

func TestChangeReason(t *testing.T) {
	a := types.Identity{Address: "1.1.1.1", Provider: "A"}

	assert.Equal(t, "IP", ChangeReason(a, types.Identity{Address: "2.2.2.2", Provider: "A"}))
	assert.Equal(t, "ISP", ChangeReason(a, types.Identity{Address: "1.1.1.1", Provider: "B"}))
	assert.Equal(t, "IP and ISP", ChangeReason(a, types.Identity{Address: "2.2.2.2", Provider: "B"}))
	assert.Contains(t,
		ChangeDetected(a, types.Identity{Address: "2.2.2.2", Provider: "B"}, time.Now(), 1).Render(),
		"🌐 *IP And ISP Change Detected*")
}

func TestRenderEscapesMarkdown(t *testing.T) {
	m := ConnectivityRestored(types.Identity{Address: "5.6.7.8", Provider: "AS1 Big*Net_Co"}, "9s")

	assert.Contains(t, m.Render(), "🏢 ISP : *AS1 Big*\\**Net_Co*")
	assert.Equal(t, "`a'b`", styled("a`b", StyleCode))
	assert.Equal(t, `snake\_case`, styled("snake_case", StylePlain))
}

func TestCrashed(t *testing.T) {
	m := Crashed(errors.New("boom"), "abc-123")

	assert.Equal(t, KindCrashed, m.Kind)
	assert.Contains(t, m.Render(), "💥 Error : `boom`")
	assert.Contains(t, m.Render(), "🆔 Session : `abc-123`")
}
