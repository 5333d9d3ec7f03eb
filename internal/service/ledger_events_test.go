package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNATSLedgerPublisherWithoutConnectionIsNop(t *testing.T) {
	publisher := NewNATSLedgerPublisher(nil, "timebank")
	require.IsType(t, NopLedgerPublisher{}, publisher)
	require.NoError(t, publisher.Publish(context.Background(), LedgerEvent{Type: EventActivityLogged}))
}

func TestLedgerEventPayload(t *testing.T) {
	payload, err := json.Marshal(LedgerEvent{Type: EventRedemptionCreated, Role: "mentor", Email: "a@example.com", EntryID: 3, Points: -30})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"redemption.created","role":"mentor","email":"a@example.com","entry_id":3,"points":-30,"occurred_at":"0001-01-01T00:00:00Z"}`, string(payload))
}
