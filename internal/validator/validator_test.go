package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Token   string `mapstructure:"bot_token" validate:"required,bottoken"`
	Channel string `mapstructure:"channel_id" validate:"required,chatid"`
}

func TestStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"numeric channel", sample{"123456:AAbb-cc_DD", "-1001234567890"}, ""},
		{"named channel", sample{"123456:AAbb", "@hotspot_alerts"}, ""},
		{"missing token", sample{"", "42"}, "bot_token is required"},
		{"bad token", sample{"not-a-token", "42"}, "bot_token must look like"},
		{"bad channel", sample{"1:x", "channel"}, "channel_id must be a numeric chat ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
