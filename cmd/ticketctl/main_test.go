package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportMoment = func() time.Time { return time.Date(2024, 3, 15, 14, 30, 5, 0, time.Local) }

func TestListPrintsTableAndRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tickets", r.URL.Path)
		assert.Equal(t, "Harassment", r.URL.Query().Get("reason"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = io.WriteString(w, `{"items":[{"id":"0000-abcdef","shortId":"abcdef","tripId":"TR-1","tripDate":"2024-03-01","driverId":7,"reason":"Harassment","city":"Cairo","agentName":"Sam","createdAt":"2024-03-01T09:00:00Z"}],"page":2,"totalPages":2,"total":21,"pageSize":20,"range":{"from":21,"to":21}}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := run([]string{"list", "--api", srv.URL + "/api", "--reason", "Harassment", "--page", "2"}, &out, exportMoment)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "abcdef")
	assert.Contains(t, out.String(), "TR-1")
	assert.Contains(t, out.String(), "Showing 21 to 21 of 21 tickets (page 2 of 2)")
}

func TestExportWritesFileWithDashboardName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tickets/export", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
		_, _ = io.WriteString(w, "ID,Trip ID\nt-1,TR-1")
	}))
	defer srv.Close()
	dir := t.TempDir()

	var out bytes.Buffer
	err := run([]string{"export", "--api", srv.URL + "/api", "--from", "2024-01-01", "--out", dir}, &out, exportMoment)

	require.NoError(t, err)
	path := filepath.Join(dir, "tickets_all-reasons_2024-01-01_to_all_2024-03-15_14-30-05.csv")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID,Trip ID\nt-1,TR-1", string(raw))
	assert.Contains(t, out.String(), path)
}

func TestExportEmptyWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	dir := t.TempDir()

	var out bytes.Buffer
	err := run([]string{"export", "--api", srv.URL + "/api", "--reason", "Drop", "--out", dir}, &out, exportMoment)

	require.NoError(t, err)
	assert.Empty(t, out.String())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRejectsInvalidFlags(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out, exportMoment))
	assert.Error(t, run([]string{"purge"}, &out, exportMoment))
	assert.Error(t, run([]string{"list", "--reason", "Speeding"}, &out, exportMoment))
	assert.Error(t, run([]string{"export", "--to", "15/03/2024"}, &out, exportMoment))
}
