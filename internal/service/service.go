package service

import (
	"context"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/utils"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/SergeyBogomolovv/marketplace-core/internal/service")

// Ретраи для чтения. NotFound и прочие доменные ошибки не повторяются.
var readRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  5,
	Multiplier:   2,
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	// GetOrderForUpdate берет блокировку строки до конца транзакции.
	GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error)
	UpdateOrder(ctx context.Context, o entities.Order) error
}

type PaymentRepo interface {
	GetPaymentMethod(ctx context.Context, code string) (entities.PaymentMethod, error)
	// CreatePayment возвращает ErrPaymentExists, если у заказа уже есть платеж.
	CreatePayment(ctx context.Context, p entities.Payment) error
	GetPayment(ctx context.Context, id string) (entities.Payment, error)
	GetPaymentForUpdate(ctx context.Context, id string) (entities.Payment, error)
	GetPaymentByOrder(ctx context.Context, orderID string) (entities.Payment, error)
	GetPaymentByTransactionForUpdate(ctx context.Context, transactionID string) (entities.Payment, error)
	UpdatePayment(ctx context.Context, p entities.Payment) error
}

type CouponRepo interface {
	CreateCoupon(ctx context.Context, c entities.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (entities.Coupon, error)
	GetCouponByCodeForUpdate(ctx context.Context, code string) (entities.Coupon, error)
	CountCouponUsages(ctx context.Context, couponID, userID string) (int, error)
	// IncrementCouponUsage возвращает ErrCouponUsageLimit, если счетчик уже на лимите.
	IncrementCouponUsage(ctx context.Context, couponID string) (int, error)
	CreateCouponUsage(ctx context.Context, u entities.CouponUsage) error
}

type ShippingRepo interface {
	CreateShipping(ctx context.Context, s entities.Shipping) error
	GetShipping(ctx context.Context, id string) (entities.Shipping, error)
	GetShippingForUpdate(ctx context.Context, id string) (entities.Shipping, error)
	GetShippingByOrder(ctx context.Context, orderID string) (entities.Shipping, error)
	UpdateShipping(ctx context.Context, s entities.Shipping) error
	AddShippingStatusChange(ctx context.Context, c entities.ShippingStatusChange) error
	ShippingHistory(ctx context.Context, shippingID string) ([]entities.ShippingStatusChange, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

type PaymentGateway interface {
	PaymentURL(req gateway.PaymentRequest) string
	Verify(params map[string]string) bool
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
