package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for name, want := range cases {
		assert.Equalf(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	log.Warn().Str("type", "starship-pad").Msg("delete refused")
	assert.Contains(t, buf.String(), "delete refused")
	assert.Contains(t, buf.String(), "type=starship-pad")
}

func TestNewJSON_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "debug")

	log.Debug().Int("x", 64).Msg("starship landed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "starship landed", line["message"])
	assert.EqualValues(t, 64, line["x"])
	assert.Contains(t, line, "time")
}
