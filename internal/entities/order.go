package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

type PaymentState string

const (
	PaymentStateUnpaid  PaymentState = "UNPAID"
	PaymentStatePending PaymentState = "PENDING"
	PaymentStatePaid    PaymentState = "PAID"
	PaymentStateFailed  PaymentState = "FAILED"
)

// Переходы, которые может инициировать пользователь.
// Системные переходы (оплата, доставка) идут через ApplySystemStatus.
var manualTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusCreated:   {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed: {OrderStatusShipped: true, OrderStatusCancelled: true},
	OrderStatusShipped:   {OrderStatusDelivered: true},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
	OrderStatusRefunded:  {},
}

func CanTransition(from, to OrderStatus) bool {
	return manualTransitions[from][to]
}

type Order struct {
	ID            string
	UserID        string
	SellerID      string
	Status        OrderStatus
	PaymentStatus PaymentState

	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal

	CouponCode   string
	CancelReason string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Recalculate пересчитывает итог: subtotal + tax + shipping - discount.
func (o *Order) Recalculate() {
	o.Total = o.Subtotal.Add(o.Tax).Add(o.ShippingCost).Sub(o.Discount)
}

// Validate проверяет денежный инвариант заказа.
func (o *Order) Validate() error {
	for _, v := range []decimal.Decimal{o.Subtotal, o.Tax, o.ShippingCost, o.Discount, o.Total} {
		if v.IsNegative() {
			return ErrOrderNegativeAmount
		}
	}
	expected := o.Subtotal.Add(o.Tax).Add(o.ShippingCost).Sub(o.Discount)
	if !o.Total.Equal(expected) {
		return ErrOrderAmountsMismatch
	}
	return nil
}

// Cancel - отмена по запросу пользователя, проверяется по таблице переходов.
func (o *Order) Cancel(reason string, now time.Time) error {
	if !CanTransition(o.Status, OrderStatusCancelled) {
		return ErrOrderNotCancellable
	}
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	return nil
}

// ApplySystemStatus применяет переход, пришедший от оплаты или доставки.
// Такие переходы авторитетны и не сверяются с таблицей ручных переходов.
// Возвращает false, если заказ уже в этом статусе.
func (o *Order) ApplySystemStatus(status OrderStatus, now time.Time) bool {
	if o.Status == status {
		return false
	}
	o.Status = status
	o.UpdatedAt = now
	switch status {
	case OrderStatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	return true
}

// SetPaymentStatus возвращает false, если статус оплаты не изменился.
func (o *Order) SetPaymentStatus(status PaymentState, now time.Time) bool {
	if o.PaymentStatus == status {
		return false
	}
	o.PaymentStatus = status
	o.UpdatedAt = now
	return true
}
