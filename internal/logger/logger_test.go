package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelInfo)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	log.Warn("warned")

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "shown 2", got[0]["message"])
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "warn", got[1]["level"])
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, LevelDebug).With("call_id", "abc").Debug("x")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0]["call_id"])
}

func TestToolResult(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelInfo)

	log.ToolCall("add_title", `{"slide_number":1,"text":"Hello"}`)
	log.ToolResult("delete_slide", false, "❌ AppleScript error: no slide", 1500*time.Millisecond)

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "add_title", got[0]["tool"])
	assert.Equal(t, "warn", got[1]["level"])
	assert.Equal(t, false, got[1]["ok"])
	assert.Equal(t, "❌ AppleScript error: no slide", got[1]["output"])
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "one", compact("one", 10))
	assert.Equal(t, "a\nb\n...", compact("a\nb\nc\nd", 100))
	assert.Equal(t, "abcde...", compact(strings.Repeat("abcdef", 3), 5))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "keynote-mcp.log")
	log, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug("to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("nothing")
	assert.NoError(t, log.Close())
}
