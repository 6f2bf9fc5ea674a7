package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

func (r *postgresRepo) GetPaymentMethod(ctx context.Context, code string) (entities.PaymentMethod, error) {
	query, args := r.qb.Select("code", "name", "kind", "fee_percent", "fixed_fee", "is_active").
		From("payment_methods").
		Where(sq.Eq{"code": code}).
		MustSql()

	var method PaymentMethod
	if err := r.getContext(ctx, &method, query, args...); err != nil {
		return entities.PaymentMethod{}, notFound(err, entities.ErrPaymentMethodNotFound)
	}
	return PaymentMethodToEntity(method), nil
}

// CreatePayment вставляет платеж. Уникальный order_id гарантирует,
// что из параллельных вставок для одного заказа пройдет ровно одна.
func (r *postgresRepo) CreatePayment(ctx context.Context, p entities.Payment) error {
	query, args := r.qb.Insert("payments").
		Columns(paymentColumns...).
		Values(
			p.ID, p.OrderID, p.MethodCode, p.Amount, p.ProcessingFee, p.Currency,
			string(p.Status), p.TransactionID, nullString(p.GatewayTransactionID), nullString(p.PaymentURL),
			nullString(p.ReturnURL), nullString(p.CancelURL), nullString(p.ClientIP), nullString(p.FailureReason),
			p.ExpiredAt, nullTime(p.PaidAt), p.CreatedAt, p.UpdatedAt,
		).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return paymentInsertErr(err)
	}
	return affectOne(res, entities.ErrPaymentExists)
}

const paymentOrderConstraint = "payments_order_id_key"

// paymentInsertErr отличает дубль платежа по заказу от коллизии transaction_id.
// Коллизия - инфраструктурная ошибка, а не Conflict.
func paymentInsertErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == paymentOrderConstraint {
		return entities.ErrPaymentExists
	}
	return fmt.Errorf("failed to insert payment: %w", err)
}

func (r *postgresRepo) GetPayment(ctx context.Context, id string) (entities.Payment, error) {
	return r.getPayment(ctx, sq.Eq{"id": id}, false)
}

func (r *postgresRepo) GetPaymentForUpdate(ctx context.Context, id string) (entities.Payment, error) {
	return r.getPayment(ctx, sq.Eq{"id": id}, true)
}

func (r *postgresRepo) GetPaymentByOrder(ctx context.Context, orderID string) (entities.Payment, error) {
	return r.getPayment(ctx, sq.Eq{"order_id": orderID}, false)
}

func (r *postgresRepo) GetPaymentByTransactionForUpdate(ctx context.Context, transactionID string) (entities.Payment, error) {
	return r.getPayment(ctx, sq.Eq{"transaction_id": transactionID}, true)
}

func (r *postgresRepo) getPayment(ctx context.Context, where sq.Eq, lock bool) (entities.Payment, error) {
	query, args := r.paymentQuery(where, lock).MustSql()

	var payment Payment
	if err := r.getContext(ctx, &payment, query, args...); err != nil {
		return entities.Payment{}, notFound(err, entities.ErrPaymentNotFound)
	}
	return PaymentToEntity(payment), nil
}

func (r *postgresRepo) paymentQuery(where sq.Eq, lock bool) sq.SelectBuilder {
	q := r.qb.Select(paymentColumns...).
		From("payments").
		Where(where)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func (r *postgresRepo) UpdatePayment(ctx context.Context, p entities.Payment) error {
	query, args := r.qb.Update("payments").
		SetMap(map[string]any{
			"status":                 string(p.Status),
			"gateway_transaction_id": nullString(p.GatewayTransactionID),
			"payment_url":            nullString(p.PaymentURL),
			"failure_reason":         nullString(p.FailureReason),
			"paid_at":                nullTime(p.PaidAt),
			"updated_at":             p.UpdatedAt,
		}).
		Where(sq.Eq{"id": p.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return affectOne(res, entities.ErrPaymentNotFound)
}
