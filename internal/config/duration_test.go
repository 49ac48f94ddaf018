package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "1h30m", want: 90 * time.Minute},
		{input: "2d", want: 48 * time.Hour},
		{input: "1w", want: 7 * 24 * time.Hour},
		{input: "1w2d12h", want: 9*24*time.Hour + 12*time.Hour},
		{input: "720h", want: 720 * time.Hour},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "5x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Duration())
		})
	}
}

func TestDuration_String(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{d: 0, want: "0s"},
		{d: Duration(30 * time.Second), want: "30s"},
		{d: Duration(48 * time.Hour), want: "2d"},
		{d: Duration(9*24*time.Hour + 12*time.Hour), want: "1w2d12h0m0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestDuration_JSONRoundTrip(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"2d"`), &d))
	assert.Equal(t, 48*time.Hour, d.Duration())

	// Numbers are nanoseconds for backwards compatibility.
	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, d.Duration())

	b, err := json.Marshal(Duration(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, `"1m0s"`, string(b))
}
