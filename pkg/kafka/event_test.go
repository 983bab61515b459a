package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordPayload struct {
	ObjectID string `json:"objectID"`
	Title    string `json:"title"`
}

func TestNewEvent(t *testing.T) {
	e, err := NewEvent("foxes.content.updated", "solution-ai", "content_record", "cms", recordPayload{
		ObjectID: "solution-ai",
		Title:    "AI solutions for travel",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "foxes.content.updated", e.EventType)
	assert.Equal(t, "solution-ai", e.AggregateID)
	assert.Equal(t, 1, e.Version)
	assert.False(t, e.Timestamp.IsZero())
}

func TestEvent_RoundTrip(t *testing.T) {
	e, err := NewEvent("foxes.content.deleted", "old-page", "content_record", "cms", recordPayload{ObjectID: "old-page"})
	require.NoError(t, err)
	e.WithCorrelationID("req-9")

	data, err := e.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, e.EventID, decoded.EventID)
	assert.Equal(t, "req-9", decoded.CorrelationID)

	var payload recordPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "old-page", payload.ObjectID)
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{"))
	assert.Error(t, err)
}

func TestPingBrokers_NoBrokers(t *testing.T) {
	err := PingBrokers(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers configured")
}
