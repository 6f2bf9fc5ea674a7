package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) CreateShipping(ctx context.Context, s entities.Shipping) error {
	query, args := r.qb.Insert("shippings").
		Columns(shippingColumns...).
		Values(
			s.ID, s.OrderID, s.Method, string(s.Status), s.TrackingNumber, s.Carrier, s.Cost,
			nullTime(s.EstimatedDeliveryDate), nullTime(s.ActualDeliveryDate), nullString(s.Notes),
			s.CreatedAt, s.UpdatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrShippingExists
		}
		return fmt.Errorf("failed to insert shipping: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetShipping(ctx context.Context, id string) (entities.Shipping, error) {
	return r.getShipping(ctx, sq.Eq{"id": id}, false)
}

func (r *postgresRepo) GetShippingForUpdate(ctx context.Context, id string) (entities.Shipping, error) {
	return r.getShipping(ctx, sq.Eq{"id": id}, true)
}

func (r *postgresRepo) GetShippingByOrder(ctx context.Context, orderID string) (entities.Shipping, error) {
	return r.getShipping(ctx, sq.Eq{"order_id": orderID}, false)
}

func (r *postgresRepo) getShipping(ctx context.Context, where sq.Eq, lock bool) (entities.Shipping, error) {
	q := r.qb.Select(shippingColumns...).
		From("shippings").
		Where(where)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	query, args := q.MustSql()

	var shipping Shipping
	if err := r.getContext(ctx, &shipping, query, args...); err != nil {
		return entities.Shipping{}, notFound(err, entities.ErrShippingNotFound)
	}
	return ShippingToEntity(shipping), nil
}

func (r *postgresRepo) UpdateShipping(ctx context.Context, s entities.Shipping) error {
	query, args := r.qb.Update("shippings").
		SetMap(map[string]any{
			"status":               string(s.Status),
			"notes":                nullString(s.Notes),
			"actual_delivery_date": nullTime(s.ActualDeliveryDate),
			"updated_at":           s.UpdatedAt,
		}).
		Where(sq.Eq{"id": s.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update shipping: %w", err)
	}
	return affectOne(res, entities.ErrShippingNotFound)
}

func (r *postgresRepo) AddShippingStatusChange(ctx context.Context, c entities.ShippingStatusChange) error {
	query, args := r.qb.Insert("shipping_status_history").
		Columns("shipping_id", "from_status", "to_status", "notes", "changed_at").
		Values(c.ShippingID, string(c.From), string(c.To), nullString(c.Notes), c.ChangedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert shipping status change: %w", err)
	}
	return nil
}

func (r *postgresRepo) ShippingHistory(ctx context.Context, shippingID string) ([]entities.ShippingStatusChange, error) {
	query, args := r.qb.Select("shipping_id", "from_status", "to_status", "notes", "changed_at").
		From("shipping_status_history").
		Where(sq.Eq{"shipping_id": shippingID}).
		OrderBy("changed_at", "id").
		MustSql()

	var rows []ShippingStatusChange
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select shipping history: %w", err)
	}

	history := make([]entities.ShippingStatusChange, 0, len(rows))
	for _, row := range rows {
		history = append(history, ShippingStatusChangeToEntity(row))
	}
	return history, nil
}
