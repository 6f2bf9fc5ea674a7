package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSuccess    PaymentStatus = "SUCCESS"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusExpired    PaymentStatus = "EXPIRED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
)

// Terminal - из этих статусов платеж уже никуда не переходит.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusExpired, PaymentStatusCancelled:
		return true
	}
	return false
}

type PaymentMethodKind string

const (
	PaymentMethodOnline         PaymentMethodKind = "ONLINE_GATEWAY"
	PaymentMethodCashOnDelivery PaymentMethodKind = "CASH_ON_DELIVERY"
)

type PaymentMethod struct {
	Code       string
	Name       string
	Kind       PaymentMethodKind
	FeePercent decimal.Decimal
	FixedFee   decimal.Decimal
	IsActive   bool
}

// Fee = amount * feePercent / 100 + fixedFee.
func (m PaymentMethod) Fee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(m.FeePercent).Div(decimal.NewFromInt(100)).Add(m.FixedFee).Round(2)
}

type Payment struct {
	ID                   string
	OrderID              string
	MethodCode           string
	Amount               decimal.Decimal
	ProcessingFee        decimal.Decimal
	Currency             string
	Status               PaymentStatus
	TransactionID        string
	GatewayTransactionID string
	PaymentURL           string
	ReturnURL            string
	CancelURL            string
	ClientIP             string
	FailureReason        string
	ExpiredAt            time.Time
	PaidAt               *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Open - платеж еще ждет результата (можно обработать, отменить или принять callback).
func (p *Payment) Open() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusProcessing
}

func (p *Payment) IsExpired(now time.Time) bool {
	return now.After(p.ExpiredAt)
}

func (p *Payment) MarkProcessing(url string, now time.Time) {
	p.Status = PaymentStatusProcessing
	p.PaymentURL = url
	p.UpdatedAt = now
}

func (p *Payment) MarkSucceeded(gatewayTxID string, now time.Time) {
	p.Status = PaymentStatusSuccess
	p.GatewayTransactionID = gatewayTxID
	p.PaidAt = &now
	p.UpdatedAt = now
}

func (p *Payment) MarkFailed(reason string, now time.Time) {
	p.Status = PaymentStatusFailed
	p.FailureReason = reason
	p.UpdatedAt = now
}

func (p *Payment) MarkExpired(now time.Time) {
	p.Status = PaymentStatusExpired
	p.FailureReason = "expired"
	p.UpdatedAt = now
}

func (p *Payment) Cancel(now time.Time) error {
	if !p.Open() {
		return ErrPaymentFinalized
	}
	p.Status = PaymentStatusCancelled
	p.UpdatedAt = now
	return nil
}
