package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) CreateCoupon(ctx context.Context, c entities.Coupon) error {
	query, args := r.qb.Insert("coupons").
		Columns(couponColumns...).
		Values(
			c.ID, c.Code, string(c.Type), c.Value, c.MinimumOrderAmount, c.MaximumDiscountAmount,
			c.UsageLimit, c.UsageLimitPerUser, c.UsedCount, c.StartDate, c.EndDate,
			c.IsActive, c.IsPublic, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrCouponExists
		}
		return fmt.Errorf("failed to insert coupon: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetCouponByCode(ctx context.Context, code string) (entities.Coupon, error) {
	return r.getCoupon(ctx, code, false)
}

// GetCouponByCodeForUpdate сериализует все применения одного купона.
func (r *postgresRepo) GetCouponByCodeForUpdate(ctx context.Context, code string) (entities.Coupon, error) {
	return r.getCoupon(ctx, code, true)
}

func (r *postgresRepo) getCoupon(ctx context.Context, code string, lock bool) (entities.Coupon, error) {
	query, args := r.couponByCodeQuery(code, lock).MustSql()

	var coupon Coupon
	if err := r.getContext(ctx, &coupon, query, args...); err != nil {
		return entities.Coupon{}, notFound(err, entities.ErrCouponNotFound)
	}
	return CouponToEntity(coupon), nil
}

func (r *postgresRepo) couponByCodeQuery(code string, lock bool) sq.SelectBuilder {
	q := r.qb.Select(couponColumns...).
		From("coupons").
		Where(sq.Eq{"code": code})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func (r *postgresRepo) CountCouponUsages(ctx context.Context, couponID, userID string) (int, error) {
	query, args := r.qb.Select("COUNT(*)").
		From("coupon_usages").
		Where(sq.Eq{"coupon_id": couponID, "user_id": userID}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count coupon usages: %w", err)
	}
	return count, nil
}

// IncrementCouponUsage увеличивает счетчик только пока он ниже лимита
// и возвращает новое значение.
func (r *postgresRepo) IncrementCouponUsage(ctx context.Context, couponID string) (int, error) {
	query, args := r.incrementUsageQuery(couponID).MustSql()

	var used int
	if err := r.getContext(ctx, &used, query, args...); err != nil {
		return 0, notFound(err, entities.ErrCouponUsageLimit)
	}
	return used, nil
}

// Условие used_count < usage_limit не дает превысить лимит даже без блокировки строки.
func (r *postgresRepo) incrementUsageQuery(couponID string) sq.UpdateBuilder {
	return r.qb.Update("coupons").
		Set("used_count", sq.Expr("used_count + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": couponID}).
		Where("used_count < usage_limit").
		Suffix("RETURNING used_count")
}

func (r *postgresRepo) CreateCouponUsage(ctx context.Context, u entities.CouponUsage) error {
	query, args := r.qb.Insert("coupon_usages").
		Columns("id", "coupon_id", "user_id", "order_id", "discount_amount", "used_at").
		Values(u.ID, u.CouponID, u.UserID, u.OrderID, u.DiscountAmount, u.UsedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrCouponAlreadyUsed
		}
		return fmt.Errorf("failed to insert coupon usage: %w", err)
	}
	return nil
}
