package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/config"
	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/trm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reasonInvalidSignature = "invalid signature"

type OrderReader interface {
	GetOrder(ctx context.Context, id string) (entities.Order, error)
}

type CreatePaymentInput struct {
	OrderID    string
	MethodCode string
	// Amount по умолчанию равен итогу заказа.
	Amount    decimal.Decimal
	Currency  string
	ReturnURL string
	CancelURL string
	ClientIP  string
}

type paymentService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      PaymentRepo
	orders    OrderReader
	gateway   PaymentGateway
	emitter   *Emitter
	cfg       config.Payment
	now       func() time.Time
}

func NewPaymentService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo PaymentRepo,
	orders OrderReader,
	gw PaymentGateway,
	emitter *Emitter,
	cfg config.Payment,
	opts ...Option,
) *paymentService {
	o := newOptions(opts)
	return &paymentService{
		logger:    logger.With(slog.String("service", "payment")),
		txManager: txManager,
		repo:      repo,
		orders:    orders,
		gateway:   gw,
		emitter:   emitter,
		cfg:       cfg,
		now:       o.now,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, in CreatePaymentInput) (entities.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.CreatePayment")
	defer span.End()

	order, err := s.orders.GetOrder(ctx, in.OrderID)
	if err != nil {
		return entities.Payment{}, err
	}

	// Повторный платеж - всегда Conflict, даже если заказ уже подтвержден.
	if _, err := s.repo.GetPaymentByOrder(ctx, order.ID); err == nil {
		return entities.Payment{}, entities.ErrPaymentExists
	} else if !errors.Is(err, entities.ErrPaymentNotFound) {
		return entities.Payment{}, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if order.Status != entities.OrderStatusCreated {
		return entities.Payment{}, entities.ErrOrderNotAwaitingSetup
	}

	method, err := s.repo.GetPaymentMethod(ctx, in.MethodCode)
	if err != nil {
		return entities.Payment{}, err
	}
	if !method.IsActive {
		return entities.Payment{}, entities.ErrPaymentMethodInactive
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = order.Total
	}
	if !amount.IsPositive() {
		return entities.Payment{}, entities.ErrPaymentAmount
	}

	currency := in.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	now := s.now()
	payment := entities.Payment{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		MethodCode:    method.Code,
		Amount:        amount,
		ProcessingFee: method.Fee(amount),
		Currency:      currency,
		Status:        entities.PaymentStatusPending,
		TransactionID: newTransactionID(now),
		ReturnURL:     in.ReturnURL,
		CancelURL:     in.CancelURL,
		ClientIP:      in.ClientIP,
		ExpiredAt:     now.Add(s.cfg.Timeout),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Между проверкой и вставкой может успеть параллельный запрос,
	// окончательно дубликат отсекает уникальный индекс по order_id.
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return entities.Payment{}, err
	}

	paymentTransitions.WithLabelValues(string(payment.Status)).Inc()
	s.logger.InfoContext(ctx, "payment created",
		slog.String("payment_id", payment.ID),
		slog.String("order_id", payment.OrderID),
		slog.String("transaction_id", payment.TransactionID),
	)
	s.emitter.Emit(ctx, events.PaymentCreated{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		TransactionID: payment.TransactionID,
		Method:        payment.MethodCode,
		Amount:        payment.Amount,
		ProcessingFee: payment.ProcessingFee,
		Currency:      payment.Currency,
		CreatedAt:     now,
	})
	return payment, nil
}

// ProcessPayment запускает оплату. Просроченный платеж фиксируется как
// EXPIRED, и только после коммита возвращается ErrPaymentExpired.
func (s *paymentService) ProcessPayment(ctx context.Context, id string) (entities.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.ProcessPayment")
	defer span.End()

	var (
		payment entities.Payment
		ev      events.Event
		expired bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.repo.GetPaymentForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if payment.Status != entities.PaymentStatusPending {
			return entities.ErrPaymentNotPending
		}

		now := s.now()
		if payment.IsExpired(now) {
			payment.MarkExpired(now)
			ev, expired = paymentFailed(payment, now), true
			return s.repo.UpdatePayment(ctx, payment)
		}

		method, err := s.repo.GetPaymentMethod(ctx, payment.MethodCode)
		if err != nil {
			return err
		}

		switch method.Kind {
		case entities.PaymentMethodCashOnDelivery:
			payment.MarkSucceeded("", now)
			ev = paymentSucceeded(payment, now)
		default:
			url := s.gateway.PaymentURL(gateway.PaymentRequest{
				TxnRef:    payment.TransactionID,
				Amount:    payment.Amount,
				Currency:  payment.Currency,
				OrderInfo: "Payment for order " + payment.OrderID,
				ReturnURL: payment.ReturnURL,
				ClientIP:  payment.ClientIP,
				CreatedAt: now,
				ExpiresAt: payment.ExpiredAt,
			})
			payment.MarkProcessing(url, now)
			ev = events.PaymentProcessing{
				PaymentID:     payment.ID,
				OrderID:       payment.OrderID,
				TransactionID: payment.TransactionID,
				Amount:        payment.Amount,
				PaymentURL:    url,
				ProcessedAt:   now,
			}
		}
		return s.repo.UpdatePayment(ctx, payment)
	})
	if err != nil {
		return entities.Payment{}, err
	}

	s.committed(ctx, payment, ev)
	if expired {
		return payment, entities.ErrPaymentExpired
	}
	return payment, nil
}

// HandleCallback принимает результат от шлюза. Платеж ищется по vnp_TxnRef
// и блокируется, поэтому повтор того же callback видит финальный статус
// и получает ErrPaymentFinalized без записи и без события.
func (s *paymentService) HandleCallback(ctx context.Context, params map[string]string) (entities.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.HandleCallback")
	defer span.End()

	cb := gateway.CallbackFromParams(params)
	if cb.TxnRef == "" {
		return entities.Payment{}, entities.ErrPaymentNotFound
	}

	var (
		payment      entities.Payment
		ev           events.Event
		badSignature bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.repo.GetPaymentByTransactionForUpdate(ctx, cb.TxnRef)
		if err != nil {
			return err
		}
		if !payment.Open() {
			return entities.ErrPaymentFinalized
		}

		now := s.now()
		switch {
		case !s.gateway.Verify(params):
			badSignature = true
			payment.MarkFailed(reasonInvalidSignature, now)
			ev = paymentFailed(payment, now)
		case cb.Amount != "" && cb.Amount != gateway.MinorUnits(payment.Amount):
			payment.MarkFailed(fmt.Sprintf("amount mismatch: %s", cb.Amount), now)
			ev = paymentFailed(payment, now)
		case cb.Success():
			payment.MarkSucceeded(cb.TransactionNo, now)
			ev = paymentSucceeded(payment, now)
		default:
			payment.MarkFailed(fmt.Sprintf("gateway response code %s", cb.ResponseCode), now)
			ev = paymentFailed(payment, now)
		}
		return s.repo.UpdatePayment(ctx, payment)
	})
	if err != nil {
		return entities.Payment{}, err
	}

	s.committed(ctx, payment, ev)
	if badSignature {
		s.logger.WarnContext(ctx, "callback signature mismatch", slog.String("transaction_id", cb.TxnRef))
		return payment, entities.ErrPaymentBadSignature
	}
	return payment, nil
}

func (s *paymentService) CancelPayment(ctx context.Context, id string) (entities.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentService.CancelPayment")
	defer span.End()

	var payment entities.Payment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.repo.GetPaymentForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := payment.Cancel(s.now()); err != nil {
			return err
		}
		return s.repo.UpdatePayment(ctx, payment)
	})
	if err != nil {
		return entities.Payment{}, err
	}

	s.committed(ctx, payment, events.PaymentCancelled{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		CancelledAt:   payment.UpdatedAt,
	})
	return payment, nil
}

// GetPayment переводит просроченный PENDING платеж в EXPIRED при чтении.
func (s *paymentService) GetPayment(ctx context.Context, id string) (entities.Payment, error) {
	payment, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	return s.expireIfDue(ctx, payment)
}

func (s *paymentService) GetPaymentByOrder(ctx context.Context, orderID string) (entities.Payment, error) {
	payment, err := s.repo.GetPaymentByOrder(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	return s.expireIfDue(ctx, payment)
}

func (s *paymentService) expireIfDue(ctx context.Context, payment entities.Payment) (entities.Payment, error) {
	if payment.Status != entities.PaymentStatusPending || !payment.IsExpired(s.now()) {
		return payment, nil
	}

	var ev events.Event
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.repo.GetPaymentForUpdate(ctx, payment.ID)
		if err != nil {
			return err
		}
		now := s.now()
		// Перепроверка под блокировкой: платеж мог уйти в обработку.
		if payment.Status != entities.PaymentStatusPending || !payment.IsExpired(now) {
			return nil
		}
		payment.MarkExpired(now)
		ev = paymentFailed(payment, now)
		return s.repo.UpdatePayment(ctx, payment)
	})
	if err != nil {
		return entities.Payment{}, err
	}

	if ev != nil {
		s.committed(ctx, payment, ev)
	}
	return payment, nil
}

func (s *paymentService) committed(ctx context.Context, p entities.Payment, ev events.Event) {
	paymentTransitions.WithLabelValues(string(p.Status)).Inc()
	s.logger.InfoContext(ctx, "payment status changed",
		slog.String("payment_id", p.ID),
		slog.String("order_id", p.OrderID),
		slog.String("status", string(p.Status)),
	)
	s.emitter.Emit(ctx, ev)
}

func paymentSucceeded(p entities.Payment, now time.Time) events.PaymentSucceeded {
	return events.PaymentSucceeded{
		PaymentID:            p.ID,
		OrderID:              p.OrderID,
		TransactionID:        p.TransactionID,
		GatewayTransactionID: p.GatewayTransactionID,
		Amount:               p.Amount,
		Currency:             p.Currency,
		PaidAt:               now,
	}
}

func paymentFailed(p entities.Payment, now time.Time) events.PaymentFailed {
	return events.PaymentFailed{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		PaymentStatus: string(p.Status),
		Reason:        p.FailureReason,
		FailedAt:      now,
	}
}

// newTransactionID: yyyyMMddHHmmss + 8 случайных цифр.
func newTransactionID(now time.Time) string {
	return now.Format(gateway.TimeLayout) + fmt.Sprintf("%08d", rand.Intn(100_000_000))
}
