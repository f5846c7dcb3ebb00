package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "production")

	logger.Debug("hidden")
	logger.Info("visible", "employee_id", "abc")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "ponto", entry["service"])
	assert.Equal(t, "abc", entry["employee_id"])
}

func TestNewLogger_Development(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "development")

	logger.Debug("gallery loaded", "entries", 3)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "entries=3")
	assert.Contains(t, out, "source=")
}
