package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/trm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCarrierPrefix = "TRK"

type OrderStore interface {
	GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error)
	UpdateOrder(ctx context.Context, o entities.Order) error
}

type CreateShippingInput struct {
	OrderID               string
	Method                string
	TrackingNumber        string
	Carrier               string
	Cost                  decimal.Decimal
	EstimatedDeliveryDate *time.Time
}

type ShippingDetails struct {
	entities.Shipping
	History []entities.ShippingStatusChange
}

type shippingService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      ShippingRepo
	orders    OrderStore
	emitter   *Emitter
	now       func() time.Time
}

func NewShippingService(logger *slog.Logger, txManager trm.Manager, repo ShippingRepo, orders OrderStore, emitter *Emitter, opts ...Option) *shippingService {
	o := newOptions(opts)
	return &shippingService{
		logger:    logger.With(slog.String("service", "shipping")),
		txManager: txManager,
		repo:      repo,
		orders:    orders,
		emitter:   emitter,
		now:       o.now,
	}
}

// CreateShipping создает отправку для подтвержденного заказа
// и в той же транзакции переводит заказ в SHIPPED.
func (s *shippingService) CreateShipping(ctx context.Context, in CreateShippingInput) (entities.Shipping, error) {
	ctx, span := tracer.Start(ctx, "ShippingService.CreateShipping")
	defer span.End()

	var (
		shipping entities.Shipping
		order    entities.Order
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetOrderForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}

		if _, err := s.repo.GetShippingByOrder(ctx, order.ID); err == nil {
			return entities.ErrShippingExists
		} else if !errors.Is(err, entities.ErrShippingNotFound) {
			return fmt.Errorf("failed to check existing shipping: %w", err)
		}
		if order.Status != entities.OrderStatusConfirmed {
			return entities.ErrOrderNotConfirmed
		}

		now := s.now()
		tracking := in.TrackingNumber
		if tracking == "" {
			tracking = newTrackingNumber(in.Carrier)
		}
		shipping = entities.Shipping{
			ID:                    uuid.NewString(),
			OrderID:               order.ID,
			Method:                in.Method,
			Status:                entities.ShippingStatusPending,
			TrackingNumber:        tracking,
			Carrier:               in.Carrier,
			Cost:                  in.Cost,
			EstimatedDeliveryDate: in.EstimatedDeliveryDate,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := s.repo.CreateShipping(ctx, shipping); err != nil {
			return err
		}

		order.ApplySystemStatus(entities.OrderStatusShipped, now)
		return s.orders.UpdateOrder(ctx, order)
	})
	if err != nil {
		return entities.Shipping{}, err
	}

	s.logger.InfoContext(ctx, "shipping created",
		slog.String("shipping_id", shipping.ID),
		slog.String("order_id", shipping.OrderID),
		slog.String("tracking_number", shipping.TrackingNumber),
	)
	s.emitter.Emit(ctx,
		events.ShippingCreated{
			ShippingID:     shipping.ID,
			OrderID:        shipping.OrderID,
			TrackingNumber: shipping.TrackingNumber,
			Carrier:        shipping.Carrier,
			Cost:           shipping.Cost,
			CreatedAt:      shipping.CreatedAt,
		},
		events.OrderShipped{
			OrderID:   order.ID,
			UserID:    order.UserID,
			ShippedAt: *order.ShippedAt,
		},
	)
	return shipping, nil
}

// UpdateShippingStatus меняет статус отправки и проецирует его на заказ.
// Блокировки берутся в порядке заказ, затем отправка.
func (s *shippingService) UpdateShippingStatus(ctx context.Context, id string, status entities.ShippingStatus, notes string) (entities.Shipping, error) {
	ctx, span := tracer.Start(ctx, "ShippingService.UpdateShippingStatus")
	defer span.End()

	var (
		shipping   entities.Shipping
		change     entities.ShippingStatusChange
		orderEvent events.Event
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetShipping(ctx, id)
		if err != nil {
			return err
		}
		order, err := s.orders.GetOrderForUpdate(ctx, current.OrderID)
		if err != nil {
			return err
		}
		shipping, err = s.repo.GetShippingForUpdate(ctx, id)
		if err != nil {
			return err
		}

		now := s.now()
		change, err = shipping.Transition(status, notes, now)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateShipping(ctx, shipping); err != nil {
			return err
		}
		if err := s.repo.AddShippingStatusChange(ctx, change); err != nil {
			return err
		}

		target, ok := status.OrderStatus()
		if !ok || !order.ApplySystemStatus(target, now) {
			return nil
		}
		if target == entities.OrderStatusCancelled && order.CancelReason == "" {
			order.CancelReason = "shipping cancelled"
		}
		if err := s.orders.UpdateOrder(ctx, order); err != nil {
			return err
		}
		orderEvent = orderEventFor(order, now)
		return nil
	})
	if err != nil {
		return entities.Shipping{}, err
	}

	s.logger.InfoContext(ctx, "shipping status updated",
		slog.String("shipping_id", shipping.ID),
		slog.String("from", string(change.From)),
		slog.String("to", string(change.To)),
	)
	s.emitter.Emit(ctx,
		events.ShippingStatusUpdated{
			ShippingID:     shipping.ID,
			OrderID:        shipping.OrderID,
			TrackingNumber: shipping.TrackingNumber,
			OldStatus:      string(change.From),
			NewStatus:      string(change.To),
			Notes:          change.Notes,
			UpdatedAt:      change.ChangedAt,
		},
		orderEvent,
	)
	return shipping, nil
}

func (s *shippingService) GetShipping(ctx context.Context, id string) (ShippingDetails, error) {
	shipping, err := s.repo.GetShipping(ctx, id)
	if err != nil {
		return ShippingDetails{}, err
	}
	return s.withHistory(ctx, shipping)
}

func (s *shippingService) GetShippingByOrder(ctx context.Context, orderID string) (ShippingDetails, error) {
	shipping, err := s.repo.GetShippingByOrder(ctx, orderID)
	if err != nil {
		return ShippingDetails{}, err
	}
	return s.withHistory(ctx, shipping)
}

func (s *shippingService) withHistory(ctx context.Context, shipping entities.Shipping) (ShippingDetails, error) {
	history, err := s.repo.ShippingHistory(ctx, shipping.ID)
	if err != nil {
		return ShippingDetails{}, err
	}
	return ShippingDetails{Shipping: shipping, History: history}, nil
}

func orderEventFor(o entities.Order, now time.Time) events.Event {
	switch o.Status {
	case entities.OrderStatusShipped:
		return events.OrderShipped{OrderID: o.ID, UserID: o.UserID, ShippedAt: now}
	case entities.OrderStatusDelivered:
		return events.OrderDelivered{OrderID: o.ID, UserID: o.UserID, DeliveredAt: now}
	case entities.OrderStatusCancelled:
		return events.OrderCancelled{OrderID: o.ID, UserID: o.UserID, Reason: o.CancelReason, CancelledAt: now}
	default:
		return orderUpdated(o)
	}
}

// newTrackingNumber: префикс перевозчика + 12 цифр.
func newTrackingNumber(carrier string) string {
	prefix := strings.ToUpper(strings.Join(strings.Fields(carrier), ""))
	if prefix == "" {
		prefix = defaultCarrierPrefix
	}
	return prefix + fmt.Sprintf("%012d", rand.Int63n(1_000_000_000_000))
}
