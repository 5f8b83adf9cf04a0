package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventUserCreated, func(context.Context, Event) error {
		calls = append(calls, "user")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated, EntityID: "t1"}))
	assert.Equal(t, []string{"first:t1", "second:t1"}, calls)
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	reached := false
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventComplaintCreated})
	assert.ErrorIs(t, err, boom)
	assert.True(t, reached)
}

func TestSubscribeAllCoversEveryEventType(t *testing.T) {
	d := NewInMemoryDispatcher()
	seen := map[EventType]int{}
	SubscribeAll(d, func(_ context.Context, e Event) error {
		seen[e.Type]++
		return nil
	})

	for _, typ := range []EventType{EventComplaintCreated, EventComplaintStatusChanged, EventUserCreated, EventTicketCreated} {
		require.NoError(t, d.Publish(context.Background(), Event{Type: typ}))
	}
	assert.Len(t, seen, 4)
}

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaForwarderWritesKeyedMessage(t *testing.T) {
	w := &recordingWriter{}
	f := newKafkaForwarder(w, "complaint-desk", zap.NewNop())
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	err := f.Handle(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventTicketCreated,
		EntityID:  "ticket-1",
		Timestamp: ts,
		Payload:   TicketCreatedPayload{TripID: "TR-1", Reason: domain.TicketReasonHarassment, Priority: 1},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "complaint-desk.ticket_created", msg.Topic)
	assert.Equal(t, "ticket-1", string(msg.Key))
	assert.True(t, ts.Equal(msg.Time))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "ticket_created", decoded["type"])
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "Harassment", payload["reason"])
}

func TestKafkaForwarderTopicWithoutPrefix(t *testing.T) {
	f := newKafkaForwarder(&recordingWriter{}, "", zap.NewNop())
	assert.Equal(t, "user_created", f.Topic(EventUserCreated))
}

func TestKafkaForwarderReportsWriteFailure(t *testing.T) {
	f := newKafkaForwarder(&recordingWriter{err: errors.New("broker down")}, "x", zap.NewNop())
	err := f.Handle(context.Background(), Event{ID: "e", Type: EventUserCreated})
	assert.ErrorContains(t, err, "broker down")
}

func TestNewKafkaForwarderRequiresBrokers(t *testing.T) {
	_, err := NewKafkaForwarder(nil, "x", zap.NewNop())
	assert.Error(t, err)
}

func TestKafkaWriterFlushesWithoutWaitingForBatch(t *testing.T) {
	w := newKafkaWriter([]string{"127.0.0.1:9092"})
	defer w.Close()

	assert.Equal(t, batchTimeout, w.BatchTimeout)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.False(t, w.Async)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
}
