package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Ledger event types.
const (
	EventActivityLogged    = "activity.logged"
	EventRedemptionCreated = "redemption.created"
)

// LedgerEvent announces an append to one of the ledgers.
type LedgerEvent struct {
	Type       string    `json:"type"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	EntryID    uint      `json:"entry_id"`
	Points     int       `json:"points"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LedgerPublisher forwards ledger events to downstream consumers.
type LedgerPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}

type natsLedgerPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSLedgerPublisher publishes events on "<prefix>.<event type>".
// A nil connection yields a publisher that drops every event.
func NewNATSLedgerPublisher(conn *nats.Conn, prefix string) LedgerPublisher {
	if conn == nil {
		return NopLedgerPublisher{}
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = "timebank"
	}
	return &natsLedgerPublisher{conn: conn, prefix: prefix}
}

func (p *natsLedgerPublisher) Publish(_ context.Context, event LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(p.prefix+"."+event.Type, payload)
}

// NopLedgerPublisher discards events.
type NopLedgerPublisher struct{}

// Publish implements LedgerPublisher.
func (NopLedgerPublisher) Publish(context.Context, LedgerEvent) error { return nil }

// publishLedgerEvent sends the event and only logs failures; the ledger write
// has already committed.
func publishLedgerEvent(ctx context.Context, publisher LedgerPublisher, logger zerolog.Logger, event LedgerEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("event", event.Type).Msg("failed to publish ledger event")
	}
}
