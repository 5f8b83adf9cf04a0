package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/ticketlist"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", WithTimeout(2*time.Second))
}

func TestListComplaints(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/complaints", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"title":"Late","status":"open","userId":2,"user":{"id":2,"name":"Ana","email":"a@x.io"}}]`)
	})

	got, err := c.ListComplaints(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "Ana", got[0].User.Name)
}

func TestFixedErrorOnServerFailure(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to fetch complaints"}`)
	})

	_, err := c.ListComplaints(context.Background())

	require.Error(t, err)
	assert.Equal(t, "failed to fetch complaints", err.Error())
	assert.ErrorIs(t, err, ErrFetchComplaints)
	assert.NotErrorIs(t, err, ErrFetchUsers)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusInternalServerError, opErr.Status)
	assert.Contains(t, opErr.Unwrap().Error(), "Failed to fetch complaints")
}

func TestFixedErrorOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).ListUsers(context.Background())

	assert.ErrorIs(t, err, ErrFetchUsers)
	assert.Equal(t, "failed to fetch users", err.Error())
}

func TestFixedErrorOnMalformedBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrFetchUsers)
}

func TestCreateAndUpdateComplaint(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/complaints":
			assert.Equal(t, "Late", body["title"])
			assert.EqualValues(t, 3, body["userId"])
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":5,"title":"Late","status":"open","userId":3}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/complaints/5":
			assert.Equal(t, "resolved", body["status"])
			_, _ = io.WriteString(w, `{"id":5,"status":"resolved"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	created, err := c.CreateComplaint(context.Background(), dto.CreateComplaintRequest{Title: "Late", Description: "d", UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	updated, err := c.UpdateComplaintStatus(context.Background(), 5, "resolved")
	require.NoError(t, err)
	assert.Equal(t, "resolved", updated.Status)

	_, err = c.UpdateComplaintStatus(context.Background(), 6, "resolved")
	assert.ErrorIs(t, err, ErrUpdateComplaint)
}

func TestListTicketsEncodesQuery(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Took extra money", q.Get("reason"))
		assert.Equal(t, "2024-01-01", q.Get("from"))
		assert.Empty(t, q.Get("to"))
		assert.Equal(t, "3", q.Get("page"))
		_, _ = io.WriteString(w, `{"items":[],"page":3,"totalPages":3,"total":41,"pageSize":20,"range":{"from":41,"to":41}}`)
	})
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	page, err := c.ListTickets(context.Background(), ticketlist.Query{Reason: domain.TicketReasonTookExtraMoney, From: &from}, 3)

	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 41, page.Range.From)
}

func TestExportTickets(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("reason") == "Drop" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		assert.Empty(t, r.URL.Query().Get("reason"))
		w.Header().Set("Content-Type", ticketlist.ContentType)
		_, _ = io.WriteString(w, "ID,Trip ID\nt-1,TR-1")
	})

	body, ok, err := c.ExportTickets(context.Background(), ticketlist.Query{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ID,Trip ID\nt-1,TR-1", string(body))

	body, ok, err = c.ExportTickets(context.Background(), ticketlist.Query{Reason: domain.TicketReasonDrop})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, body)
}

func TestCanceledContext(t *testing.T) {
	c := New("http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CreateTicket(ctx, dto.CreateTicketRequest{})

	assert.ErrorIs(t, err, ErrCreateTicket)
	assert.True(t, errors.Is(err, context.Canceled))
}
