package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	SellerID      string          `db:"seller_id"`
	Status        string          `db:"status"`
	PaymentStatus string          `db:"payment_status"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Tax           decimal.Decimal `db:"tax"`
	ShippingCost  decimal.Decimal `db:"shipping_cost"`
	Discount      decimal.Decimal `db:"discount"`
	Total         decimal.Decimal `db:"total"`
	CouponCode    sql.NullString  `db:"coupon_code"`
	CancelReason  sql.NullString  `db:"cancel_reason"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	ShippedAt     sql.NullTime    `db:"shipped_at"`
	DeliveredAt   sql.NullTime    `db:"delivered_at"`
	CancelledAt   sql.NullTime    `db:"cancelled_at"`
}

var orderColumns = []string{
	"id", "user_id", "seller_id", "status", "payment_status",
	"subtotal", "tax", "shipping_cost", "discount", "total",
	"coupon_code", "cancel_reason", "created_at", "updated_at",
	"shipped_at", "delivered_at", "cancelled_at",
}

type Payment struct {
	ID                   string          `db:"id"`
	OrderID              string          `db:"order_id"`
	MethodCode           string          `db:"method_code"`
	Amount               decimal.Decimal `db:"amount"`
	ProcessingFee        decimal.Decimal `db:"processing_fee"`
	Currency             string          `db:"currency"`
	Status               string          `db:"status"`
	TransactionID        string          `db:"transaction_id"`
	GatewayTransactionID sql.NullString  `db:"gateway_transaction_id"`
	PaymentURL           sql.NullString  `db:"payment_url"`
	ReturnURL            sql.NullString  `db:"return_url"`
	CancelURL            sql.NullString  `db:"cancel_url"`
	ClientIP             sql.NullString  `db:"client_ip"`
	FailureReason        sql.NullString  `db:"failure_reason"`
	ExpiredAt            time.Time       `db:"expired_at"`
	PaidAt               sql.NullTime    `db:"paid_at"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

var paymentColumns = []string{
	"id", "order_id", "method_code", "amount", "processing_fee", "currency",
	"status", "transaction_id", "gateway_transaction_id", "payment_url",
	"return_url", "cancel_url", "client_ip", "failure_reason",
	"expired_at", "paid_at", "created_at", "updated_at",
}

type PaymentMethod struct {
	Code       string          `db:"code"`
	Name       string          `db:"name"`
	Kind       string          `db:"kind"`
	FeePercent decimal.Decimal `db:"fee_percent"`
	FixedFee   decimal.Decimal `db:"fixed_fee"`
	IsActive   bool            `db:"is_active"`
}

type Coupon struct {
	ID                    string              `db:"id"`
	Code                  string              `db:"code"`
	Type                  string              `db:"type"`
	Value                 decimal.Decimal     `db:"value"`
	MinimumOrderAmount    decimal.NullDecimal `db:"minimum_order_amount"`
	MaximumDiscountAmount decimal.NullDecimal `db:"maximum_discount_amount"`
	UsageLimit            int                 `db:"usage_limit"`
	UsageLimitPerUser     int                 `db:"usage_limit_per_user"`
	UsedCount             int                 `db:"used_count"`
	StartDate             time.Time           `db:"start_date"`
	EndDate               time.Time           `db:"end_date"`
	IsActive              bool                `db:"is_active"`
	IsPublic              bool                `db:"is_public"`
	CreatedBy             string              `db:"created_by"`
	CreatedAt             time.Time           `db:"created_at"`
	UpdatedAt             time.Time           `db:"updated_at"`
}

var couponColumns = []string{
	"id", "code", "type", "value", "minimum_order_amount", "maximum_discount_amount",
	"usage_limit", "usage_limit_per_user", "used_count", "start_date", "end_date",
	"is_active", "is_public", "created_by", "created_at", "updated_at",
}

type Shipping struct {
	ID                    string          `db:"id"`
	OrderID               string          `db:"order_id"`
	Method                string          `db:"method"`
	Status                string          `db:"status"`
	TrackingNumber        string          `db:"tracking_number"`
	Carrier               string          `db:"carrier"`
	Cost                  decimal.Decimal `db:"cost"`
	EstimatedDeliveryDate sql.NullTime    `db:"estimated_delivery_date"`
	ActualDeliveryDate    sql.NullTime    `db:"actual_delivery_date"`
	Notes                 sql.NullString  `db:"notes"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

var shippingColumns = []string{
	"id", "order_id", "method", "status", "tracking_number", "carrier", "cost",
	"estimated_delivery_date", "actual_delivery_date", "notes", "created_at", "updated_at",
}

type ShippingStatusChange struct {
	ShippingID string         `db:"shipping_id"`
	FromStatus string         `db:"from_status"`
	ToStatus   string         `db:"to_status"`
	Notes      sql.NullString `db:"notes"`
	ChangedAt  time.Time      `db:"changed_at"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		ID:            o.ID,
		UserID:        o.UserID,
		SellerID:      o.SellerID,
		Status:        entities.OrderStatus(o.Status),
		PaymentStatus: entities.PaymentState(o.PaymentStatus),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		ShippingCost:  o.ShippingCost,
		Discount:      o.Discount,
		Total:         o.Total,
		CouponCode:    nullStringToString(o.CouponCode),
		CancelReason:  nullStringToString(o.CancelReason),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		ShippedAt:     nullTimeToPtr(o.ShippedAt),
		DeliveredAt:   nullTimeToPtr(o.DeliveredAt),
		CancelledAt:   nullTimeToPtr(o.CancelledAt),
	}
}

func PaymentToEntity(p Payment) entities.Payment {
	return entities.Payment{
		ID:                   p.ID,
		OrderID:              p.OrderID,
		MethodCode:           p.MethodCode,
		Amount:               p.Amount,
		ProcessingFee:        p.ProcessingFee,
		Currency:             p.Currency,
		Status:               entities.PaymentStatus(p.Status),
		TransactionID:        p.TransactionID,
		GatewayTransactionID: nullStringToString(p.GatewayTransactionID),
		PaymentURL:           nullStringToString(p.PaymentURL),
		ReturnURL:            nullStringToString(p.ReturnURL),
		CancelURL:            nullStringToString(p.CancelURL),
		ClientIP:             nullStringToString(p.ClientIP),
		FailureReason:        nullStringToString(p.FailureReason),
		ExpiredAt:            p.ExpiredAt,
		PaidAt:               nullTimeToPtr(p.PaidAt),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func PaymentMethodToEntity(m PaymentMethod) entities.PaymentMethod {
	return entities.PaymentMethod{
		Code:       m.Code,
		Name:       m.Name,
		Kind:       entities.PaymentMethodKind(m.Kind),
		FeePercent: m.FeePercent,
		FixedFee:   m.FixedFee,
		IsActive:   m.IsActive,
	}
}

func CouponToEntity(c Coupon) entities.Coupon {
	return entities.Coupon{
		ID:                    c.ID,
		Code:                  c.Code,
		Type:                  entities.CouponType(c.Type),
		Value:                 c.Value,
		MinimumOrderAmount:    c.MinimumOrderAmount,
		MaximumDiscountAmount: c.MaximumDiscountAmount,
		UsageLimit:            c.UsageLimit,
		UsageLimitPerUser:     c.UsageLimitPerUser,
		UsedCount:             c.UsedCount,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		IsActive:              c.IsActive,
		IsPublic:              c.IsPublic,
		CreatedBy:             c.CreatedBy,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

func ShippingToEntity(s Shipping) entities.Shipping {
	return entities.Shipping{
		ID:                    s.ID,
		OrderID:               s.OrderID,
		Method:                s.Method,
		Status:                entities.ShippingStatus(s.Status),
		TrackingNumber:        s.TrackingNumber,
		Carrier:               s.Carrier,
		Cost:                  s.Cost,
		EstimatedDeliveryDate: nullTimeToPtr(s.EstimatedDeliveryDate),
		ActualDeliveryDate:    nullTimeToPtr(s.ActualDeliveryDate),
		Notes:                 nullStringToString(s.Notes),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func ShippingStatusChangeToEntity(c ShippingStatusChange) entities.ShippingStatusChange {
	return entities.ShippingStatusChange{
		ShippingID: c.ShippingID,
		From:       entities.ShippingStatus(c.FromStatus),
		To:         entities.ShippingStatus(c.ToStatus),
		Notes:      nullStringToString(c.Notes),
		ChangedAt:  c.ChangedAt,
	}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		t := nt.Time
		return &t
	}
	return nil
}
