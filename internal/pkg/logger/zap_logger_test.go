package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l := NewZapLogger(path, true)

	l.Info("JournalService", "summary created", map[string]interface{}{"user_id": "u1"})
	l.Error("ChatService", "save failed", map[string]interface{}{"error": errors.New("boom")})
	_ = l.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "JournalService", entries[0]["module"])
	assert.Equal(t, "summary created", entries[0]["message"])

	details := entries[1]["details"].(map[string]interface{})
	assert.Equal(t, "boom", details["error"])
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	l := NewNopLogger()
	l.Debug("m", "msg", nil)
	l.Info("m", "msg", nil)
	l.Warn("m", "msg", nil)
	l.Error("m", "msg", nil)
	assert.NoError(t, l.Sync())
}
