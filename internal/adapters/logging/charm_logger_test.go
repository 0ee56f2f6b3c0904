package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/logging"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
)

func TestCharmLogger_JSONIncludesMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWriterLogger(&buf, config.LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)

	logger.Log(shared.LevelInfo, "Game saved", map[string]interface{}{"slot": "main", "bytes": 42})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Game saved", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "main", entry["slot"])
	assert.Equal(t, 42.0, entry["bytes"])
}

func TestCharmLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWriterLogger(&buf, config.LoggingConfig{Level: "warn", Format: "logfmt"})
	require.NoError(t, err)

	logger.Log(shared.LevelDebug, "hidden", nil)
	logger.Log(shared.LevelInfo, "hidden", nil)
	assert.Empty(t, buf.String())

	logger.Log(shared.LevelWarn, "Resource operation failed", map[string]interface{}{"operation": "buy resource"})
	assert.Contains(t, buf.String(), "Resource operation failed")
	assert.Contains(t, buf.String(), `operation="buy resource"`)
}

func TestCharmLogger_RejectsUnknownFormat(t *testing.T) {
	_, err := logging.NewWriterLogger(&bytes.Buffer{}, config.LoggingConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestNewCharmLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inn.log")
	logger, err := logging.NewCharmLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Log(shared.LevelError, "Persistence failure", map[string]interface{}{"slot": "main"})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Persistence failure")
}

func TestCharmLogger_AppliesPrefixAndTimeFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWriterLogger(&buf, config.LoggingConfig{
		Level:      "info",
		Format:     "logfmt",
		Prefix:     "inn-main",
		TimeFormat: "2006",
	})
	require.NoError(t, err)

	logger.Log(shared.LevelInfo, "Autosave", nil)

	assert.Contains(t, buf.String(), "inn-main")
	assert.Regexp(t, `time=\d{4} `, buf.String())
}
