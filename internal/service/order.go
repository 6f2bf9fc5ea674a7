package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/trm"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponRedeemer interface {
	Redeem(ctx context.Context, in ApplyCouponInput) (Redemption, error)
	Committed(ctx context.Context, r Redemption)
}

type CreateOrderInput struct {
	UserID       string
	SellerID     string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	coupons   CouponRedeemer
	emitter   *Emitter
	now       func() time.Time
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, coupons CouponRedeemer, emitter *Emitter, opts ...Option) *orderService {
	o := newOptions(opts)
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		coupons:   coupons,
		emitter:   emitter,
		now:       o.now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	now := s.now()
	order := entities.Order{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		SellerID:      in.SellerID,
		Status:        entities.OrderStatusCreated,
		PaymentStatus: entities.PaymentStateUnpaid,
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		ShippingCost:  in.ShippingCost,
		Discount:      decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.Recalculate()
	if err := order.Validate(); err != nil {
		return entities.Order{}, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created", slog.String("order_id", order.ID), slog.String("total", order.Total.String()))
	s.emitter.Emit(ctx, events.OrderCreated{
		OrderID:   order.ID,
		UserID:    order.UserID,
		SellerID:  order.SellerID,
		Total:     order.Total,
		CreatedAt: now,
	})
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrder(ctx, id)
		return err
	}
	if err := utils.Retry(readRetry, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// CancelOrder - отмена пользователем. Разрешена только до отгрузки.
func (s *orderService) CancelOrder(ctx context.Context, id, reason string) (entities.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.CancelOrder")
	defer span.End()

	var order entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(reason, s.now()); err != nil {
			return err
		}
		return s.repo.UpdateOrder(ctx, order)
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.InfoContext(ctx, "order cancelled", slog.String("order_id", order.ID), slog.String("reason", reason))
	s.emitter.Emit(ctx, events.OrderCancelled{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Reason:      order.CancelReason,
		CancelledAt: *order.CancelledAt,
	})
	return order, nil
}

// ApplyCouponToOrder применяет купон к сумме товаров заказа. Блокировка заказа,
// применение купона и пересчет итога выполняются в одной транзакции.
func (s *orderService) ApplyCouponToOrder(ctx context.Context, orderID, userID, code string) (entities.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.ApplyCouponToOrder")
	defer span.End()

	var (
		order      entities.Order
		redemption Redemption
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		switch {
		case order.Status != entities.OrderStatusCreated:
			return entities.ErrOrderNotAwaitingSetup
		case order.UserID != userID:
			return entities.ErrOrderNotOwned
		case order.CouponCode != "":
			return entities.ErrOrderCouponApplied
		}

		redemption, err = s.coupons.Redeem(ctx, ApplyCouponInput{
			Code:         code,
			UserID:       userID,
			OrderID:      order.ID,
			OrderAmount:  order.Subtotal,
			ShippingCost: order.ShippingCost,
		})
		if err != nil {
			return err
		}

		if redemption.Validation.FreeShipping {
			order.ShippingCost = decimal.Zero
		} else {
			order.Discount = redemption.Validation.Discount
		}
		order.CouponCode = redemption.Coupon.Code
		order.UpdatedAt = s.now()
		order.Recalculate()
		if err := order.Validate(); err != nil {
			return err
		}
		return s.repo.UpdateOrder(ctx, order)
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.coupons.Committed(ctx, redemption)
	s.emitter.Emit(ctx, orderUpdated(order))
	return order, nil
}

// HandlePaymentEvent проецирует события оплаты на заказ. Повторная доставка
// события ничего не пишет и ничего не отправляет.
func (s *orderService) HandlePaymentEvent(ctx context.Context, ev events.Event) error {
	ctx, span := tracer.Start(ctx, "OrderService.HandlePaymentEvent")
	defer span.End()

	switch e := ev.(type) {
	case events.PaymentCreated:
		return nil
	case events.PaymentProcessing:
		return s.applyPayment(ctx, e.OrderID, entities.PaymentStatePending, false)
	case events.PaymentSucceeded:
		return s.applyPayment(ctx, e.OrderID, entities.PaymentStatePaid, true)
	case events.PaymentFailed:
		return s.applyPayment(ctx, e.OrderID, entities.PaymentStateFailed, false)
	case events.PaymentCancelled:
		return s.applyPayment(ctx, e.OrderID, entities.PaymentStateUnpaid, false)
	default:
		s.logger.DebugContext(ctx, "event ignored", slog.String("type", string(ev.Type())))
		return nil
	}
}

func (s *orderService) applyPayment(ctx context.Context, orderID string, state entities.PaymentState, confirm bool) error {
	var (
		order   entities.Order
		changed bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if order.PaymentStatus == entities.PaymentStatePaid && state != entities.PaymentStatePaid {
			s.logger.WarnContext(ctx, "payment status downgrade ignored",
				slog.String("order_id", orderID),
				slog.String("status", string(state)),
			)
			return nil
		}

		now := s.now()
		changed = order.SetPaymentStatus(state, now)
		if confirm {
			switch order.Status {
			case entities.OrderStatusCreated:
				changed = order.ApplySystemStatus(entities.OrderStatusConfirmed, now) || changed
			case entities.OrderStatusCancelled:
				s.logger.WarnContext(ctx, "payment succeeded for cancelled order", slog.String("order_id", orderID))
			}
		}
		if !changed {
			return nil
		}
		return s.repo.UpdateOrder(ctx, order)
	})
	if err != nil {
		return fmt.Errorf("failed to apply payment status: %w", err)
	}

	if changed {
		s.logger.InfoContext(ctx, "order payment status updated",
			slog.String("order_id", orderID),
			slog.String("payment_status", string(order.PaymentStatus)),
			slog.String("status", string(order.Status)),
		)
		s.emitter.Emit(ctx, orderUpdated(order))
	}
	return nil
}

func orderUpdated(o entities.Order) events.OrderUpdated {
	return events.OrderUpdated{
		OrderID:       o.ID,
		OrderStatus:   string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Discount:      o.Discount,
		Total:         o.Total,
		UpdatedAt:     o.UpdatedAt,
	}
}
