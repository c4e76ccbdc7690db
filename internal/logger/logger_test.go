package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestOptions_Level(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Options{Verbose: true}.Level())
	assert.Equal(t, zapcore.WarnLevel, Options{}.Level())
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
		wantWarn  bool
	}{
		{
			name:      "verbose console",
			opts:      Options{Verbose: true},
			wantDebug: true,
			wantWarn:  true,
		},
		{
			name:     "quiet console",
			opts:     Options{},
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer Reset()

			var buf bytes.Buffer
			tt.opts.Output = &buf
			require.NoError(t, Initialize(tt.opts))

			Debugw("debug entry", "path", "src/Button.tsx")
			Warnw("warn entry", "path", "src/Card.tsx")
			require.NoError(t, Sync())

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug entry"))
			assert.Equal(t, tt.wantWarn, strings.Contains(out, "warn entry"))
		})
	}
}

func TestInitialize_JSON(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	require.NoError(t, Initialize(Options{JSONOutput: true, Output: &buf}))

	Errorw("generation failed", "path", "src/Card.tsx")
	require.NoError(t, Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "generation failed", entry["msg"])
	assert.Equal(t, "src/Card.tsx", entry["path"])
	assert.Equal(t, "error", entry["level"])
}

func TestReset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Options{Verbose: true, Output: &buf}))
	Reset()

	Errorw("dropped")
	Infow("dropped")
	assert.Empty(t, buf.String())
}
