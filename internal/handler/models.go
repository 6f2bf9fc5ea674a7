package handler

import (
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/service"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest - тело запроса на создание заказа
type CreateOrderRequest struct {
	UserID       string          `json:"user_id" validate:"required"`
	SellerID     string          `json:"seller_id" validate:"required"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ApplyCouponRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code" validate:"required,max=50"`
}

// Order представляет заказ
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	SellerID      string          `json:"seller_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ShippedAt     *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
}

type CreateCouponRequest struct {
	Code                  string           `json:"code" validate:"required,max=50"`
	Type                  string           `json:"type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING BUY_X_GET_Y"`
	Value                 decimal.Decimal  `json:"value"`
	MinimumOrderAmount    *decimal.Decimal `json:"minimum_order_amount,omitempty"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximum_discount_amount,omitempty"`
	UsageLimit            int              `json:"usage_limit" validate:"required,gte=1"`
	UsageLimitPerUser     int              `json:"usage_limit_per_user" validate:"required,gte=1"`
	StartDate             time.Time        `json:"start_date" validate:"required"`
	EndDate               time.Time        `json:"end_date" validate:"required,gtfield=StartDate"`
	IsActive              bool             `json:"is_active"`
	IsPublic              bool             `json:"is_public"`
	CreatedBy             string           `json:"created_by" validate:"required"`
}

type ValidateCouponRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	UserID      string          `json:"user_id" validate:"required"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// Coupon представляет купон
type Coupon struct {
	ID                    string           `json:"id"`
	Code                  string           `json:"code"`
	Type                  string           `json:"type"`
	Value                 decimal.Decimal  `json:"value"`
	MinimumOrderAmount    *decimal.Decimal `json:"minimum_order_amount,omitempty"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximum_discount_amount,omitempty"`
	UsageLimit            int              `json:"usage_limit"`
	UsageLimitPerUser     int              `json:"usage_limit_per_user"`
	UsedCount             int              `json:"used_count"`
	StartDate             time.Time        `json:"start_date"`
	EndDate               time.Time        `json:"end_date"`
	IsActive              bool             `json:"is_active"`
	IsPublic              bool             `json:"is_public"`
	CreatedBy             string           `json:"created_by"`
}

// CouponValidation - результат проверки купона
type CouponValidation struct {
	Valid        bool            `json:"valid"`
	Reason       string          `json:"reason,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
	BuyXGetY     bool            `json:"buy_x_get_y"`
}

type CreatePaymentRequest struct {
	OrderID   string          `json:"order_id" validate:"required"`
	Method    string          `json:"method" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency" validate:"omitempty,len=3"`
	ReturnURL string          `json:"return_url" validate:"required,url"`
	CancelURL string          `json:"cancel_url" validate:"omitempty,url"`
}

// Payment представляет платеж
type Payment struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	Method               string          `json:"method"`
	Amount               decimal.Decimal `json:"amount"`
	ProcessingFee        decimal.Decimal `json:"processing_fee"`
	Currency             string          `json:"currency"`
	Status               string          `json:"status"`
	TransactionID        string          `json:"transaction_id"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	PaymentURL           string          `json:"payment_url,omitempty"`
	FailureReason        string          `json:"failure_reason,omitempty"`
	ExpiredAt            time.Time       `json:"expired_at"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type CreateShippingRequest struct {
	OrderID               string          `json:"order_id" validate:"required"`
	Method                string          `json:"method" validate:"required"`
	TrackingNumber        string          `json:"tracking_number" validate:"omitempty,max=100"`
	Carrier               string          `json:"carrier" validate:"omitempty,max=100"`
	Cost                  decimal.Decimal `json:"cost"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date,omitempty"`
}

type UpdateShippingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PICKED_UP IN_TRANSIT OUT_FOR_DELIVERY DELIVERED FAILED_DELIVERY RETURNED CANCELLED"`
	Notes  string `json:"notes" validate:"max=1000"`
}

// ShippingStatusChange - запись истории доставки
type ShippingStatusChange struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Notes     string    `json:"notes,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// Shipping представляет доставку
type Shipping struct {
	ID                    string                 `json:"id"`
	OrderID               string                 `json:"order_id"`
	Method                string                 `json:"method"`
	Status                string                 `json:"status"`
	TrackingNumber        string                 `json:"tracking_number"`
	Carrier               string                 `json:"carrier,omitempty"`
	Cost                  decimal.Decimal        `json:"cost"`
	EstimatedDeliveryDate *time.Time             `json:"estimated_delivery_date,omitempty"`
	ActualDeliveryDate    *time.Time             `json:"actual_delivery_date,omitempty"`
	Notes                 string                 `json:"notes,omitempty"`
	History               []ShippingStatusChange `json:"history,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		ID:            o.ID,
		UserID:        o.UserID,
		SellerID:      o.SellerID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		ShippingCost:  o.ShippingCost,
		Discount:      o.Discount,
		Total:         o.Total,
		CouponCode:    o.CouponCode,
		CancelReason:  o.CancelReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		ShippedAt:     o.ShippedAt,
		DeliveredAt:   o.DeliveredAt,
		CancelledAt:   o.CancelledAt,
	}
}

func (r CreateOrderRequest) ToInput() service.CreateOrderInput {
	return service.CreateOrderInput{
		UserID:       r.UserID,
		SellerID:     r.SellerID,
		Subtotal:     r.Subtotal,
		Tax:          r.Tax,
		ShippingCost: r.ShippingCost,
	}
}

func (r CreateCouponRequest) ToInput() service.CreateCouponInput {
	return service.CreateCouponInput{
		Code:                  r.Code,
		Type:                  entities.CouponType(r.Type),
		Value:                 r.Value,
		MinimumOrderAmount:    nullDecimal(r.MinimumOrderAmount),
		MaximumDiscountAmount: nullDecimal(r.MaximumDiscountAmount),
		UsageLimit:            r.UsageLimit,
		UsageLimitPerUser:     r.UsageLimitPerUser,
		StartDate:             r.StartDate,
		EndDate:               r.EndDate,
		IsActive:              r.IsActive,
		IsPublic:              r.IsPublic,
		CreatedBy:             r.CreatedBy,
	}
}

func CouponEntityToJSON(c entities.Coupon) Coupon {
	return Coupon{
		ID:                    c.ID,
		Code:                  c.Code,
		Type:                  string(c.Type),
		Value:                 c.Value,
		MinimumOrderAmount:    decimalPtr(c.MinimumOrderAmount),
		MaximumDiscountAmount: decimalPtr(c.MaximumDiscountAmount),
		UsageLimit:            c.UsageLimit,
		UsageLimitPerUser:     c.UsageLimitPerUser,
		UsedCount:             c.UsedCount,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		IsActive:              c.IsActive,
		IsPublic:              c.IsPublic,
		CreatedBy:             c.CreatedBy,
	}
}

func CouponValidationToJSON(v entities.CouponValidation) CouponValidation {
	return CouponValidation{
		Valid:        v.Valid,
		Reason:       v.Reason,
		Discount:     v.Discount,
		FreeShipping: v.FreeShipping,
		BuyXGetY:     v.BuyXGetY,
	}
}

func (r CreatePaymentRequest) ToInput(clientIP string) service.CreatePaymentInput {
	return service.CreatePaymentInput{
		OrderID:    r.OrderID,
		MethodCode: r.Method,
		Amount:     r.Amount,
		Currency:   r.Currency,
		ReturnURL:  r.ReturnURL,
		CancelURL:  r.CancelURL,
		ClientIP:   clientIP,
	}
}

func PaymentEntityToJSON(p entities.Payment) Payment {
	return Payment{
		ID:                   p.ID,
		OrderID:              p.OrderID,
		Method:               p.MethodCode,
		Amount:               p.Amount,
		ProcessingFee:        p.ProcessingFee,
		Currency:             p.Currency,
		Status:               string(p.Status),
		TransactionID:        p.TransactionID,
		GatewayTransactionID: p.GatewayTransactionID,
		PaymentURL:           p.PaymentURL,
		FailureReason:        p.FailureReason,
		ExpiredAt:            p.ExpiredAt,
		PaidAt:               p.PaidAt,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (r CreateShippingRequest) ToInput() service.CreateShippingInput {
	return service.CreateShippingInput{
		OrderID:               r.OrderID,
		Method:                r.Method,
		TrackingNumber:        r.TrackingNumber,
		Carrier:               r.Carrier,
		Cost:                  r.Cost,
		EstimatedDeliveryDate: r.EstimatedDeliveryDate,
	}
}

func ShippingEntityToJSON(s entities.Shipping, history []entities.ShippingStatusChange) Shipping {
	res := Shipping{
		ID:                    s.ID,
		OrderID:               s.OrderID,
		Method:                s.Method,
		Status:                string(s.Status),
		TrackingNumber:        s.TrackingNumber,
		Carrier:               s.Carrier,
		Cost:                  s.Cost,
		EstimatedDeliveryDate: s.EstimatedDeliveryDate,
		ActualDeliveryDate:    s.ActualDeliveryDate,
		Notes:                 s.Notes,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	for _, c := range history {
		res.History = append(res.History, ShippingStatusChange{
			From:      string(c.From),
			To:        string(c.To),
			Notes:     c.Notes,
			ChangedAt: c.ChangedAt,
		})
	}
	return res
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
