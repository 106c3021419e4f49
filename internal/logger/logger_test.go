package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetAfter(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		InitWithWriter(bytes.NewBuffer(nil), "INFO", "text", false)
	})
}

func TestLevelFiltering(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestJSONFormat(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "json", false)

	Info("structured entry", KeyOp, "invalidate", KeyExport, "exp1")

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	assert.Equal(t, "structured entry", entry["msg"])
	assert.Equal(t, "invalidate", entry[KeyOp])
	assert.Equal(t, "exp1", entry[KeyExport])
}

func TestSetLevel_InvalidIsIgnored(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("LOUD")

	Info("still info")
	assert.Contains(t, buf.String(), "still info")
}

func TestSetFormat_InvalidIsIgnored(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetFormat("xml")

	Info("plain text")
	assert.NotContains(t, buf.String(), `"msg"`)
}

func TestWith_BindsAttributes(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "json", false)

	l := With(KeyWorker, 3)
	l.Info("bound entry")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, float64(3), entry[KeyWorker])
}

func TestDuration(t *testing.T) {
	start := time.Now().Add(-10 * time.Millisecond)
	ms := Duration(start)
	assert.GreaterOrEqual(t, ms, 10.0)
	assert.Less(t, ms, 10_000.0)
}
