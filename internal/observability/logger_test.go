package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger, closeFn, err := Setup(Options{Level: "WARN", Output: &buf, Service: "chatd"})
	require.NoError(t, err)
	defer closeFn()

	logger.Info().Msg("dropped")
	logger.Warn().Str("k", "v").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "chatd", entry["service"])
	assert.Equal(t, "v", entry["k"])
}

func TestSetupFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	path := filepath.Join(t.TempDir(), "chat.log")
	logger, closeFn, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug().Msg("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestSetupInvalidLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "loud"})
	require.Error(t, err)
}
