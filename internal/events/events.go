// Package events описывает доменные события ядра заказов.
// Набор вариантов закрыт: Event реализуют только типы этого пакета.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeOrderCreated          Type = "OrderCreated"
	TypeOrderUpdated          Type = "OrderUpdated"
	TypeOrderCancelled        Type = "OrderCancelled"
	TypeOrderShipped          Type = "OrderShipped"
	TypeOrderDelivered        Type = "OrderDelivered"
	TypePaymentCreated        Type = "PaymentCreated"
	TypePaymentProcessing     Type = "PaymentProcessing"
	TypePaymentSucceeded      Type = "PaymentSuccess"
	TypePaymentFailed         Type = "PaymentFailed"
	TypePaymentCancelled      Type = "PaymentCancelled"
	TypeCouponCreated         Type = "CouponCreated"
	TypeCouponApplied         Type = "CouponApplied"
	TypeShippingCreated       Type = "ShippingCreated"
	TypeShippingStatusUpdated Type = "ShippingStatusUpdate"
)

type Entity string

const (
	EntityOrder    Entity = "order"
	EntityPayment  Entity = "payment"
	EntityCoupon   Entity = "coupon"
	EntityShipping Entity = "shipping"
)

type Event interface {
	Type() Type
	// Entity и EntityID определяют ключ архива.
	Entity() Entity
	EntityID() string
	// Status - статус сущности после события, если он есть.
	Status() string
	// PartitionKey - id заказа, чтобы события одного заказа шли по порядку.
	PartitionKey() string
	Time() time.Time

	sealed()
}

type OrderCreated struct {
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	SellerID  string          `json:"seller_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"timestamp"`
}

type OrderUpdated struct {
	OrderID       string          `json:"order_id"`
	OrderStatus   string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	UpdatedAt     time.Time       `json:"timestamp"`
}

type OrderCancelled struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"timestamp"`
}

type OrderShipped struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	ShippedAt time.Time `json:"timestamp"`
}

type OrderDelivered struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	DeliveredAt time.Time `json:"timestamp"`
}

type PaymentCreated struct {
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"timestamp"`
}

type PaymentProcessing struct {
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentURL    string          `json:"payment_url"`
	ProcessedAt   time.Time       `json:"timestamp"`
}

type PaymentSucceeded struct {
	PaymentID            string          `json:"payment_id"`
	OrderID              string          `json:"order_id"`
	TransactionID        string          `json:"transaction_id"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	PaidAt               time.Time       `json:"timestamp"`
}

type PaymentFailed struct {
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	// Статус может быть FAILED или EXPIRED.
	PaymentStatus string    `json:"status"`
	Reason        string    `json:"reason"`
	FailedAt      time.Time `json:"timestamp"`
}

type PaymentCancelled struct {
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	CancelledAt   time.Time       `json:"timestamp"`
}

type CouponCreated struct {
	CouponID   string          `json:"coupon_id"`
	Code       string          `json:"code"`
	CouponType string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"timestamp"`
}

type CouponApplied struct {
	CouponID       string          `json:"coupon_id"`
	UsageID        string          `json:"usage_id"`
	Code           string          `json:"code"`
	UserID         string          `json:"user_id"`
	OrderID        string          `json:"order_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	UsedCount      int             `json:"used_count"`
	UsedAt         time.Time       `json:"timestamp"`
}

type ShippingCreated struct {
	ShippingID     string          `json:"shipping_id"`
	OrderID        string          `json:"order_id"`
	TrackingNumber string          `json:"tracking_number"`
	Carrier        string          `json:"carrier"`
	Cost           decimal.Decimal `json:"cost"`
	CreatedAt      time.Time       `json:"timestamp"`
}

type ShippingStatusUpdated struct {
	ShippingID     string    `json:"shipping_id"`
	OrderID        string    `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	Notes          string    `json:"notes,omitempty"`
	UpdatedAt      time.Time `json:"timestamp"`
}

func (OrderCreated) Type() Type          { return TypeOrderCreated }
func (OrderUpdated) Type() Type          { return TypeOrderUpdated }
func (OrderCancelled) Type() Type        { return TypeOrderCancelled }
func (OrderShipped) Type() Type          { return TypeOrderShipped }
func (OrderDelivered) Type() Type        { return TypeOrderDelivered }
func (PaymentCreated) Type() Type        { return TypePaymentCreated }
func (PaymentProcessing) Type() Type     { return TypePaymentProcessing }
func (PaymentSucceeded) Type() Type      { return TypePaymentSucceeded }
func (PaymentFailed) Type() Type         { return TypePaymentFailed }
func (PaymentCancelled) Type() Type      { return TypePaymentCancelled }
func (CouponCreated) Type() Type         { return TypeCouponCreated }
func (CouponApplied) Type() Type         { return TypeCouponApplied }
func (ShippingCreated) Type() Type       { return TypeShippingCreated }
func (ShippingStatusUpdated) Type() Type { return TypeShippingStatusUpdated }

func (OrderCreated) Entity() Entity          { return EntityOrder }
func (OrderUpdated) Entity() Entity          { return EntityOrder }
func (OrderCancelled) Entity() Entity        { return EntityOrder }
func (OrderShipped) Entity() Entity          { return EntityOrder }
func (OrderDelivered) Entity() Entity        { return EntityOrder }
func (PaymentCreated) Entity() Entity        { return EntityPayment }
func (PaymentProcessing) Entity() Entity     { return EntityPayment }
func (PaymentSucceeded) Entity() Entity      { return EntityPayment }
func (PaymentFailed) Entity() Entity         { return EntityPayment }
func (PaymentCancelled) Entity() Entity      { return EntityPayment }
func (CouponCreated) Entity() Entity         { return EntityCoupon }
func (CouponApplied) Entity() Entity         { return EntityCoupon }
func (ShippingCreated) Entity() Entity       { return EntityShipping }
func (ShippingStatusUpdated) Entity() Entity { return EntityShipping }

func (e OrderCreated) EntityID() string          { return e.OrderID }
func (e OrderUpdated) EntityID() string          { return e.OrderID }
func (e OrderCancelled) EntityID() string        { return e.OrderID }
func (e OrderShipped) EntityID() string          { return e.OrderID }
func (e OrderDelivered) EntityID() string        { return e.OrderID }
func (e PaymentCreated) EntityID() string        { return e.PaymentID }
func (e PaymentProcessing) EntityID() string     { return e.PaymentID }
func (e PaymentSucceeded) EntityID() string      { return e.PaymentID }
func (e PaymentFailed) EntityID() string         { return e.PaymentID }
func (e PaymentCancelled) EntityID() string      { return e.PaymentID }
func (e CouponCreated) EntityID() string         { return e.CouponID }
func (e CouponApplied) EntityID() string         { return e.UsageID }
func (e ShippingCreated) EntityID() string       { return e.ShippingID }
func (e ShippingStatusUpdated) EntityID() string { return e.ShippingID }

func (OrderCreated) Status() string            { return "CREATED" }
func (e OrderUpdated) Status() string          { return e.OrderStatus }
func (OrderCancelled) Status() string          { return "CANCELLED" }
func (OrderShipped) Status() string            { return "SHIPPED" }
func (OrderDelivered) Status() string          { return "DELIVERED" }
func (PaymentCreated) Status() string          { return "PENDING" }
func (PaymentProcessing) Status() string       { return "PROCESSING" }
func (PaymentSucceeded) Status() string        { return "SUCCESS" }
func (e PaymentFailed) Status() string         { return e.PaymentStatus }
func (PaymentCancelled) Status() string        { return "CANCELLED" }
func (CouponCreated) Status() string           { return "" }
func (CouponApplied) Status() string           { return "" }
func (ShippingCreated) Status() string         { return "PENDING" }
func (e ShippingStatusUpdated) Status() string { return e.NewStatus }

func (e OrderCreated) PartitionKey() string          { return e.OrderID }
func (e OrderUpdated) PartitionKey() string          { return e.OrderID }
func (e OrderCancelled) PartitionKey() string        { return e.OrderID }
func (e OrderShipped) PartitionKey() string          { return e.OrderID }
func (e OrderDelivered) PartitionKey() string        { return e.OrderID }
func (e PaymentCreated) PartitionKey() string        { return e.OrderID }
func (e PaymentProcessing) PartitionKey() string     { return e.OrderID }
func (e PaymentSucceeded) PartitionKey() string      { return e.OrderID }
func (e PaymentFailed) PartitionKey() string         { return e.OrderID }
func (e PaymentCancelled) PartitionKey() string      { return e.OrderID }
func (e CouponCreated) PartitionKey() string         { return e.CouponID }
func (e CouponApplied) PartitionKey() string         { return e.OrderID }
func (e ShippingCreated) PartitionKey() string       { return e.OrderID }
func (e ShippingStatusUpdated) PartitionKey() string { return e.OrderID }

func (e OrderCreated) Time() time.Time          { return e.CreatedAt }
func (e OrderUpdated) Time() time.Time          { return e.UpdatedAt }
func (e OrderCancelled) Time() time.Time        { return e.CancelledAt }
func (e OrderShipped) Time() time.Time          { return e.ShippedAt }
func (e OrderDelivered) Time() time.Time        { return e.DeliveredAt }
func (e PaymentCreated) Time() time.Time        { return e.CreatedAt }
func (e PaymentProcessing) Time() time.Time     { return e.ProcessedAt }
func (e PaymentSucceeded) Time() time.Time      { return e.PaidAt }
func (e PaymentFailed) Time() time.Time         { return e.FailedAt }
func (e PaymentCancelled) Time() time.Time      { return e.CancelledAt }
func (e CouponCreated) Time() time.Time         { return e.CreatedAt }
func (e CouponApplied) Time() time.Time         { return e.UsedAt }
func (e ShippingCreated) Time() time.Time       { return e.CreatedAt }
func (e ShippingStatusUpdated) Time() time.Time { return e.UpdatedAt }

func (OrderCreated) sealed()          {}
func (OrderUpdated) sealed()          {}
func (OrderCancelled) sealed()        {}
func (OrderShipped) sealed()          {}
func (OrderDelivered) sealed()        {}
func (PaymentCreated) sealed()        {}
func (PaymentProcessing) sealed()     {}
func (PaymentSucceeded) sealed()      {}
func (PaymentFailed) sealed()         {}
func (PaymentCancelled) sealed()      {}
func (CouponCreated) sealed()         {}
func (CouponApplied) sealed()         {}
func (ShippingCreated) sealed()       {}
func (ShippingStatusUpdated) sealed() {}
