package repo

import (
	"errors"
	"testing"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementUsageQuery(t *testing.T) {
	r := NewPostgresRepo(nil)

	query, args, err := r.incrementUsageQuery("c-1").ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE coupons SET used_count = used_count + 1")
	assert.Contains(t, query, "WHERE id = $1 AND used_count < usage_limit")
	assert.Contains(t, query, "RETURNING used_count")
	assert.Equal(t, []any{"c-1"}, args)
}

func TestLockingQueries(t *testing.T) {
	r := NewPostgresRepo(nil)

	testCases := []struct {
		name     string
		builder  sq.SelectBuilder
		wantLock bool
	}{
		{name: "coupon by code", builder: r.couponByCodeQuery("SAVE10", false)},
		{name: "coupon by code for update", builder: r.couponByCodeQuery("SAVE10", true), wantLock: true},
		{name: "payment by order", builder: r.paymentQuery(sq.Eq{"order_id": "o-1"}, false)},
		{name: "payment by transaction for update", builder: r.paymentQuery(sq.Eq{"transaction_id": "tx-1"}, true), wantLock: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := tc.builder.ToSql()
			require.NoError(t, err)
			assert.Contains(t, query, "= $1")
			assert.Len(t, args, 1)
			if tc.wantLock {
				assert.Regexp(t, `FOR UPDATE$`, query)
			} else {
				assert.NotContains(t, query, "FOR UPDATE")
			}
		})
	}
}

func TestPaymentInsertErr(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{name: "duplicate order", err: &pq.Error{Code: uniqueViolation, Constraint: paymentOrderConstraint}, wantConflict: true},
		{name: "transaction id collision", err: &pq.Error{Code: uniqueViolation, Constraint: "payments_transaction_id_key"}},
		{name: "foreign key", err: &pq.Error{Code: "23503", Constraint: "payments_order_id_fkey"}},
		{name: "connection", err: errors.New("connection refused")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := paymentInsertErr(tc.err)
			if tc.wantConflict {
				assert.ErrorIs(t, err, entities.ErrPaymentExists)
				return
			}
			assert.NotErrorIs(t, err, entities.ErrConflict)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
