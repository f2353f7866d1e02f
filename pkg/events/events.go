package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/streetpulse/api/pkg/logger"
)

// Activity subjects published by the API. Consumers (dashboards, digests)
// subscribe out of process; nothing in the request path depends on them.
const (
	SubjectUserSignedUp    = "streetpulse.user.signed_up"
	SubjectReviewSubmitted = "streetpulse.review.submitted"
	SubjectBookmarkToggled = "streetpulse.bookmark.toggled"
	SubjectDealViewed      = "streetpulse.deal.viewed"
	SubjectDealCopied      = "streetpulse.deal.copied"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return p.conn.Publish(subject, payload)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NoopPublisher is used when no event bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
