package entities_test

import (
	"testing"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_Fee(t *testing.T) {
	testCases := []struct {
		name    string
		percent string
		fixed   string
		amount  string
		want    string
	}{
		{name: "percent and fixed", percent: "2", fixed: "2000", amount: "500000", want: "12000"},
		{name: "no fee", percent: "0", fixed: "0", amount: "500000", want: "0"},
		{name: "rounded", percent: "1.5", fixed: "0", amount: "33.33", want: "0.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := entities.PaymentMethod{FeePercent: dec(tc.percent), FixedFee: dec(tc.fixed)}
			assert.True(t, dec(tc.want).Equal(m.Fee(dec(tc.amount))), "got %s", m.Fee(dec(tc.amount)))
		})
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	assert.False(t, entities.PaymentStatusPending.Terminal())
	assert.False(t, entities.PaymentStatusProcessing.Terminal())
	for _, s := range []entities.PaymentStatus{
		entities.PaymentStatusSuccess,
		entities.PaymentStatusFailed,
		entities.PaymentStatusExpired,
		entities.PaymentStatusCancelled,
	} {
		assert.True(t, s.Terminal(), s)
	}
}

func TestPayment_Lifecycle(t *testing.T) {
	p := entities.Payment{
		ID:        "p-1",
		Status:    entities.PaymentStatusPending,
		ExpiredAt: now.Add(15 * time.Minute),
	}
	assert.True(t, p.Open())
	assert.False(t, p.IsExpired(now))
	assert.False(t, p.IsExpired(p.ExpiredAt))
	assert.True(t, p.IsExpired(p.ExpiredAt.Add(time.Nanosecond)))

	p.MarkProcessing("https://pay.example/?x=1", now)
	assert.Equal(t, entities.PaymentStatusProcessing, p.Status)
	assert.True(t, p.Open())

	p.MarkSucceeded("14000001", now)
	assert.Equal(t, entities.PaymentStatusSuccess, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, "14000001", p.GatewayTransactionID)
	assert.False(t, p.Open())

	assert.ErrorIs(t, p.Cancel(now), entities.ErrPaymentFinalized)
	assert.Equal(t, entities.PaymentStatusSuccess, p.Status)
}

func TestPayment_Cancel(t *testing.T) {
	p := entities.Payment{Status: entities.PaymentStatusProcessing}
	require.NoError(t, p.Cancel(now))
	assert.Equal(t, entities.PaymentStatusCancelled, p.Status)

	expired := entities.Payment{Status: entities.PaymentStatusPending}
	expired.MarkExpired(now)
	assert.Equal(t, entities.PaymentStatusExpired, expired.Status)
	assert.Equal(t, "expired", expired.FailureReason)
	assert.ErrorIs(t, expired.Cancel(now), entities.ErrInvalidState)
}
