package nats

import (
	"testing"
	"time"

	"ai-journaling-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRoundTrip(t *testing.T) {
	assert.Equal(t, "events.backfill.requested", Subject(events.TypeBackfillRequested))
	assert.Equal(t, events.TypeBackfillRequested, EventType("events.backfill.requested"))
}

func TestDecodeEnvelope(t *testing.T) {
	at := time.Date(2024, 1, 7, 8, 0, 0, 0, time.UTC)
	body := []byte(`{"type":"backfill.requested","occurred_at":"2024-01-07T08:00:00Z","data":{"user_id":"u1"}}`)

	event, err := DecodeEvent("events.backfill.requested", body)
	require.NoError(t, err)
	assert.Equal(t, events.TypeBackfillRequested, event.EventType())
	assert.Equal(t, "u1", events.String(event, "user_id"))
	assert.True(t, at.Equal(event.Timestamp()))
}

func TestDecodeBarePayload(t *testing.T) {
	event, err := DecodeEvent("events.backfill.requested", []byte(`{"user_id":"u2"}`))
	require.NoError(t, err)
	assert.Equal(t, events.TypeBackfillRequested, event.EventType())
	assert.Equal(t, "u2", events.String(event, "user_id"))
	assert.False(t, event.Timestamp().IsZero())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeEvent("events.x", []byte(`not json`))
	assert.Error(t, err)
}
