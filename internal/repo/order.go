package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, o.UserID, o.SellerID, string(o.Status), string(o.PaymentStatus),
			o.Subtotal, o.Tax, o.ShippingCost, o.Discount, o.Total,
			nullString(o.CouponCode), nullString(o.CancelReason), o.CreatedAt, o.UpdatedAt,
			nullTime(o.ShippedAt), nullTime(o.DeliveredAt), nullTime(o.CancelledAt),
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	return r.getOrder(ctx, id, false)
}

// GetOrderForUpdate блокирует строку заказа до конца транзакции.
func (r *postgresRepo) GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error) {
	return r.getOrder(ctx, id, true)
}

func (r *postgresRepo) getOrder(ctx context.Context, id string, lock bool) (entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	query, args := q.MustSql()

	var order Order
	if err := r.getContext(ctx, &order, query, args...); err != nil {
		return entities.Order{}, notFound(err, entities.ErrOrderNotFound)
	}
	return OrderToEntity(order), nil
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Update("orders").
		SetMap(map[string]any{
			"status":         string(o.Status),
			"payment_status": string(o.PaymentStatus),
			"subtotal":       o.Subtotal,
			"tax":            o.Tax,
			"shipping_cost":  o.ShippingCost,
			"discount":       o.Discount,
			"total":          o.Total,
			"coupon_code":    nullString(o.CouponCode),
			"cancel_reason":  nullString(o.CancelReason),
			"updated_at":     o.UpdatedAt,
			"shipped_at":     nullTime(o.ShippedAt),
			"delivered_at":   nullTime(o.DeliveredAt),
			"cancelled_at":   nullTime(o.CancelledAt),
		}).
		Where(sq.Eq{"id": o.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return affectOne(res, entities.ErrOrderNotFound)
}
