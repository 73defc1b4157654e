package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New("buddybreak", INFO, &buf)

	logger.Info("waitlist", "signup recorded", map[string]any{"source": "form"})
	logger.Error("store", "insert failed", errors.New("boom"), nil)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "buddybreak", entries[0].Site)
	assert.Equal(t, "waitlist", entries[0].Category)
	assert.Equal(t, "form", entries[0].Fields["source"])
	assert.Equal(t, "ERROR", entries[1].Level)
	assert.Equal(t, "boom", entries[1].Error)
}

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("site", WARN, &buf)

	logger.Debug("x", "hidden", nil)
	logger.Info("x", "hidden", nil)
	logger.Warn("x", "shown", nil)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0].Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" Warning "))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}

func TestSubscribeReceivesEntries(t *testing.T) {
	logger := Discard()
	logger.minLevel = DEBUG
	ch := make(chan Entry, 1)
	unsubscribe := logger.Subscribe(ch)

	logger.Info("server", "started", nil)
	entry := <-ch
	assert.Equal(t, "started", entry.Message)

	unsubscribe()
	logger.Info("server", "again", nil)
	assert.Empty(t, ch)
}

func TestLogContextCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New("site", INFO, &buf)

	logger.WithRequestID("req-1").WithCategory("waitlist").WithField("outcome", "registered").Info("submitted")

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].RequestID)
	assert.Equal(t, "registered", entries[0].Fields["outcome"])
}

func TestHTTPLoggerAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New("site", INFO, &buf)

	var seen string
	handler := NewHTTPLogger(logger).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/waitlist", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "http", entries[0].Category)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, seen, entries[0].RequestID)
	assert.EqualValues(t, http.StatusTeapot, entries[0].Fields["status"])
}

func TestHTTPLoggerSkip(t *testing.T) {
	var buf bytes.Buffer
	hl := NewHTTPLogger(New("site", INFO, &buf))
	hl.Skip = func(r *http.Request) bool { return r.URL.Path == "/healthz" }
	handler := hl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Zero(t, buf.Len())
}

func TestFileWriterAndReadRecent(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "landing.log", 1, 2)
	require.NoError(t, err)

	logger := New("site", INFO, fw)
	for _, msg := range []string{"one", "two", "three"} {
		logger.Info("server", msg, nil)
	}
	require.NoError(t, fw.Close())

	entries, err := ReadRecent(filepath.Join(dir, "landing.log"), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "two", entries[0].Message)
	assert.Equal(t, "three", entries[1].Message)
}

func TestReadRecentMatchingFiltersBeforeLimit(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "landing.log", 1, 2)
	require.NoError(t, err)

	logger := New("site", INFO, fw)
	logger.Info("waitlist", "w1", nil)
	logger.Info("waitlist", "w2", nil)
	for i := 0; i < 5; i++ {
		logger.Info("server", "noise", nil)
	}
	require.NoError(t, fw.Close())

	entries, err := ReadRecentMatching(filepath.Join(dir, "landing.log"), 2, func(e Entry) bool {
		return e.Category == "waitlist"
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "w1", entries[0].Message)
	assert.Equal(t, "w2", entries[1].Message)
}

func TestReadRecentMissingFile(t *testing.T) {
	entries, err := ReadRecent(filepath.Join(t.TempDir(), "absent.log"), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileWriterRotatesOnSize(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "landing.log", 1, 3)
	require.NoError(t, err)
	fw.maxSize = 16

	_, err = fw.Write([]byte("0123456789\n"))
	require.NoError(t, err)
	_, err = fw.Write([]byte("abcdefghij\n"))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	current, err := os.ReadFile(filepath.Join(dir, "landing.log"))
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij\n", string(current))

	rotated, err := filepath.Glob(filepath.Join(dir, "landing.log.*.gz"))
	require.NoError(t, err)
	assert.Len(t, rotated, 1)
}
