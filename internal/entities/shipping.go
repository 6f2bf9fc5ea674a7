package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShippingStatus string

const (
	ShippingStatusPending        ShippingStatus = "PENDING"
	ShippingStatusPickedUp       ShippingStatus = "PICKED_UP"
	ShippingStatusInTransit      ShippingStatus = "IN_TRANSIT"
	ShippingStatusOutForDelivery ShippingStatus = "OUT_FOR_DELIVERY"
	ShippingStatusDelivered      ShippingStatus = "DELIVERED"
	ShippingStatusFailedDelivery ShippingStatus = "FAILED_DELIVERY"
	ShippingStatusReturned       ShippingStatus = "RETURNED"
	ShippingStatusCancelled      ShippingStatus = "CANCELLED"
)

// Отображение статуса доставки на статус заказа.
var orderProjection = map[ShippingStatus]OrderStatus{
	ShippingStatusPickedUp:       OrderStatusShipped,
	ShippingStatusInTransit:      OrderStatusShipped,
	ShippingStatusOutForDelivery: OrderStatusShipped,
	ShippingStatusDelivered:      OrderStatusDelivered,
	ShippingStatusFailedDelivery: OrderStatusRefunded,
	ShippingStatusReturned:       OrderStatusRefunded,
	ShippingStatusCancelled:      OrderStatusCancelled,
}

// OrderStatus возвращает статус заказа для данного статуса доставки.
func (s ShippingStatus) OrderStatus() (OrderStatus, bool) {
	st, ok := orderProjection[s]
	return st, ok
}

func (s ShippingStatus) Closed() bool {
	return s == ShippingStatusDelivered || s == ShippingStatusReturned || s == ShippingStatusCancelled
}

func (s ShippingStatus) Valid() bool {
	_, ok := orderProjection[s]
	return ok || s == ShippingStatusPending
}

type Shipping struct {
	ID                    string
	OrderID               string
	Method                string
	Status                ShippingStatus
	TrackingNumber        string
	Carrier               string
	Cost                  decimal.Decimal
	EstimatedDeliveryDate *time.Time
	ActualDeliveryDate    *time.Time
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type ShippingStatusChange struct {
	ShippingID string
	From       ShippingStatus
	To         ShippingStatus
	Notes      string
	ChangedAt  time.Time
}

// Transition меняет статус и возвращает запись об изменении.
func (s *Shipping) Transition(to ShippingStatus, notes string, now time.Time) (ShippingStatusChange, error) {
	if s.Status.Closed() {
		return ShippingStatusChange{}, ErrShippingClosed
	}
	if to == s.Status || to == ShippingStatusPending || !to.Valid() {
		return ShippingStatusChange{}, ErrShippingStatus
	}

	change := ShippingStatusChange{
		ShippingID: s.ID,
		From:       s.Status,
		To:         to,
		Notes:      notes,
		ChangedAt:  now,
	}

	s.Status = to
	if notes != "" {
		s.Notes = notes
	}
	if to == ShippingStatusDelivered {
		s.ActualDeliveryDate = &now
	}
	s.UpdatedAt = now
	return change, nil
}
