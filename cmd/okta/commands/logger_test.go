package commands_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/mdwallick/okta-sdk-go/cmd/okta/commands"
	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "", want: zerolog.InfoLevel},
		{input: "INFO", want: zerolog.InfoLevel},
		{input: "warning", want: zerolog.WarnLevel},
		{input: " error ", want: zerolog.ErrorLevel},
		{input: "off", want: zerolog.Disabled},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			level, err := commands.ParseLogLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, constants.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestZerologAdapter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger, err := commands.NewLogger(&buf, "info", commands.LogFormatJSON)
	require.NoError(t, err)

	adapter := commands.NewZerologAdapter(logger)
	adapter.Debug("hidden", nil)
	adapter.Warn("rate limit low", map[string]interface{}{"remaining": 3, "path": "/api/v1/users"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))

	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "rate limit low", entry["message"])
	assert.InDelta(t, 3, entry["remaining"], 0)
	assert.Equal(t, "/api/v1/users", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_ConsoleIsPlainOffTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger, err := commands.NewLogger(&buf, "debug", "")
	require.NoError(t, err)

	commands.NewZerologAdapter(logger).Info("token saved", map[string]interface{}{"org": "example"})

	out := buf.String()
	assert.Contains(t, out, "token saved")
	assert.Contains(t, out, "org=example")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := commands.NewLogger(&bytes.Buffer{}, "loud", commands.LogFormatJSON)
	require.ErrorIs(t, err, constants.ErrUnknownLogLevel)
}
