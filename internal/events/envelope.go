package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	envelopeVersion = 1
	producerName    = "marketplace-core"
)

var ErrUnknownEventType = errors.New("unknown event type")

// Envelope - формат события на шине.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     Type            `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

func Encode(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     ev.Type(),
		EventVersion:  envelopeVersion,
		OccurredAt:    ev.Time().UTC(),
		Producer:      producerName,
		CorrelationID: ev.PartitionKey(),
		Payload:       payload,
	})
}

func Decode(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	switch env.EventType {
	case TypeOrderCreated:
		return unwrap[OrderCreated](env.Payload)
	case TypeOrderUpdated:
		return unwrap[OrderUpdated](env.Payload)
	case TypeOrderCancelled:
		return unwrap[OrderCancelled](env.Payload)
	case TypeOrderShipped:
		return unwrap[OrderShipped](env.Payload)
	case TypeOrderDelivered:
		return unwrap[OrderDelivered](env.Payload)
	case TypePaymentCreated:
		return unwrap[PaymentCreated](env.Payload)
	case TypePaymentProcessing:
		return unwrap[PaymentProcessing](env.Payload)
	case TypePaymentSucceeded:
		return unwrap[PaymentSucceeded](env.Payload)
	case TypePaymentFailed:
		return unwrap[PaymentFailed](env.Payload)
	case TypePaymentCancelled:
		return unwrap[PaymentCancelled](env.Payload)
	case TypeCouponCreated:
		return unwrap[CouponCreated](env.Payload)
	case TypeCouponApplied:
		return unwrap[CouponApplied](env.Payload)
	case TypeShippingCreated:
		return unwrap[ShippingCreated](env.Payload)
	case TypeShippingStatusUpdated:
		return unwrap[ShippingStatusUpdated](env.Payload)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, env.EventType)
}

func unwrap[T Event](payload json.RawMessage) (Event, error) {
	var ev T
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return ev, nil
}
