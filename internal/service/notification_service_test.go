package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
)

func TestNotificationServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core)).RegisterHandlers()
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: "t-1",
		Payload:  events.TicketCreatedPayload{Reason: domain.TicketReasonHarassment, Priority: 1},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: "t-2",
		Payload:  events.TicketCreatedPayload{Reason: domain.TicketReasonDrop, Priority: 4},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventComplaintCreated, EntityID: "7"}))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "ComplaintCreated", entries[2].Message)
	assert.Equal(t, "7", entries[2].ContextMap()["complaint_id"])
}
