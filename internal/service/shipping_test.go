package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shippingFixture struct {
	store     *memStore
	rec       *recorder
	clock     *fakeClock
	shippings interface {
		CreateShipping(ctx context.Context, in service.CreateShippingInput) (entities.Shipping, error)
		UpdateShippingStatus(ctx context.Context, id string, status entities.ShippingStatus, notes string) (entities.Shipping, error)
		GetShipping(ctx context.Context, id string) (service.ShippingDetails, error)
		GetShippingByOrder(ctx context.Context, orderID string) (service.ShippingDetails, error)
	}
	orders interface {
		CancelOrder(ctx context.Context, id, reason string) (entities.Order, error)
	}
}

func newShippingFixture(t *testing.T) *shippingFixture {
	t.Helper()
	f := &shippingFixture{
		store: newMemStore(),
		rec:   &recorder{},
		clock: newFakeClock(testNow),
	}
	txManager := &memManager{store: f.store}
	emitter := service.NewEmitter(discardLogger(), f.rec, nil)
	f.shippings = service.NewShippingService(discardLogger(), txManager, f.store, f.store, emitter, service.WithClock(f.clock.Now))
	f.orders = service.NewOrderService(discardLogger(), txManager, f.store, nil, emitter, service.WithClock(f.clock.Now))
	return f
}

func (f *shippingFixture) seedOrder(t *testing.T, status entities.OrderStatus) entities.Order {
	t.Helper()
	o := sampleOrder(status, entities.PaymentStatePaid)
	require.NoError(t, f.store.CreateOrder(context.Background(), o))
	return o
}

func (f *shippingFixture) order(t *testing.T, id string) entities.Order {
	t.Helper()
	o, err := f.store.GetOrder(context.Background(), id)
	require.NoError(t, err)
	return o
}

func TestShippingService_CreateShipping(t *testing.T) {
	f := newShippingFixture(t)
	order := f.seedOrder(t, entities.OrderStatusConfirmed)
	ctx := context.Background()

	shipping, err := f.shippings.CreateShipping(ctx, service.CreateShippingInput{
		OrderID: order.ID,
		Method:  "standard",
		Carrier: "giao hang nhanh",
		Cost:    dec("30000"),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ShippingStatusPending, shipping.Status)
	assert.Regexp(t, regexp.MustCompile(`^GIAOHANGNHANH\d{12}$`), shipping.TrackingNumber)

	shipped := f.order(t, order.ID)
	assert.Equal(t, entities.OrderStatusShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedAt)
	assert.Equal(t, []events.Type{events.TypeShippingCreated, events.TypeOrderShipped}, f.rec.Types())

	_, err = f.shippings.CreateShipping(ctx, service.CreateShippingInput{OrderID: order.ID, Method: "standard"})
	assert.ErrorIs(t, err, entities.ErrShippingExists)
	assert.ErrorIs(t, err, entities.ErrConflict)
	assert.Len(t, f.rec.Types(), 2)
}

func TestShippingService_CreateShippingRejects(t *testing.T) {
	t.Run("order not confirmed", func(t *testing.T) {
		f := newShippingFixture(t)
		order := f.seedOrder(t, entities.OrderStatusCreated)
		_, err := f.shippings.CreateShipping(context.Background(), service.CreateShippingInput{OrderID: order.ID, Method: "standard"})
		assert.ErrorIs(t, err, entities.ErrOrderNotConfirmed)
		assert.Empty(t, f.rec.Events())
	})

	t.Run("shipping exists", func(t *testing.T) {
		f := newShippingFixture(t)
		order := f.seedOrder(t, entities.OrderStatusConfirmed)
		require.NoError(t, f.store.CreateShipping(context.Background(), entities.Shipping{ID: "s-0", OrderID: order.ID, Status: entities.ShippingStatusPending}))

		_, err := f.shippings.CreateShipping(context.Background(), service.CreateShippingInput{OrderID: order.ID, Method: "standard"})
		assert.ErrorIs(t, err, entities.ErrShippingExists)
		assert.Equal(t, entities.OrderStatusConfirmed, f.order(t, order.ID).Status)
	})

	t.Run("explicit tracking and default prefix", func(t *testing.T) {
		f := newShippingFixture(t)
		order := f.seedOrder(t, entities.OrderStatusConfirmed)
		shipping, err := f.shippings.CreateShipping(context.Background(), service.CreateShippingInput{OrderID: order.ID, Method: "standard", TrackingNumber: "VN123"})
		require.NoError(t, err)
		assert.Equal(t, "VN123", shipping.TrackingNumber)

		other := sampleOrder(entities.OrderStatusConfirmed, entities.PaymentStatePaid)
		other.ID = "order-2"
		require.NoError(t, f.store.CreateOrder(context.Background(), other))
		shipping, err = f.shippings.CreateShipping(context.Background(), service.CreateShippingInput{OrderID: other.ID, Method: "express"})
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^TRK\d{12}$`), shipping.TrackingNumber)
	})
}

func TestShippingService_DeliveryFlow(t *testing.T) {
	f := newShippingFixture(t)
	order := f.seedOrder(t, entities.OrderStatusConfirmed)
	ctx := context.Background()

	shipping, err := f.shippings.CreateShipping(ctx, service.CreateShippingInput{OrderID: order.ID, Method: "standard", Carrier: "GHN"})
	require.NoError(t, err)
	f.rec.Reset()

	_, err = f.shippings.CreateShipping(ctx, service.CreateShippingInput{OrderID: order.ID})
	require.Error(t, err)

	_, err = f.orders.CancelOrder(ctx, order.ID, "too late")
	assert.ErrorIs(t, err, entities.ErrOrderNotCancellable)

	f.clock.Advance(time.Hour)
	shipping, err = f.shippings.UpdateShippingStatus(ctx, shipping.ID, entities.ShippingStatusInTransit, "left warehouse")
	require.NoError(t, err)
	assert.Equal(t, entities.ShippingStatusInTransit, shipping.Status)
	assert.Equal(t, entities.OrderStatusShipped, f.order(t, order.ID).Status)
	assert.Equal(t, []events.Type{events.TypeShippingStatusUpdated}, f.rec.Types())

	f.clock.Advance(24 * time.Hour)
	shipping, err = f.shippings.UpdateShippingStatus(ctx, shipping.ID, entities.ShippingStatusDelivered, "")
	require.NoError(t, err)
	require.NotNil(t, shipping.ActualDeliveryDate)
	assert.Equal(t, f.clock.Now(), *shipping.ActualDeliveryDate)

	delivered := f.order(t, order.ID)
	assert.Equal(t, entities.OrderStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, []events.Type{
		events.TypeShippingStatusUpdated,
		events.TypeShippingStatusUpdated,
		events.TypeOrderDelivered,
	}, f.rec.Types())

	_, err = f.shippings.UpdateShippingStatus(ctx, shipping.ID, entities.ShippingStatusReturned, "")
	assert.ErrorIs(t, err, entities.ErrShippingClosed)

	details, err := f.shippings.GetShippingByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, details.History, 2)
	assert.Equal(t, entities.ShippingStatusPending, details.History[0].From)
	assert.Equal(t, entities.ShippingStatusInTransit, details.History[0].To)
	assert.Equal(t, "left warehouse", details.History[0].Notes)
	assert.Equal(t, entities.ShippingStatusDelivered, details.History[1].To)
}

func TestShippingService_OrderProjection(t *testing.T) {
	testCases := []struct {
		name       string
		status     entities.ShippingStatus
		wantOrder  entities.OrderStatus
		wantEvent  events.Type
		wantReason string
	}{
		{name: "cancelled", status: entities.ShippingStatusCancelled, wantOrder: entities.OrderStatusCancelled, wantEvent: events.TypeOrderCancelled, wantReason: "shipping cancelled"},
		{name: "failed delivery", status: entities.ShippingStatusFailedDelivery, wantOrder: entities.OrderStatusRefunded, wantEvent: events.TypeOrderUpdated},
		{name: "returned", status: entities.ShippingStatusReturned, wantOrder: entities.OrderStatusRefunded, wantEvent: events.TypeOrderUpdated},
		{name: "picked up", status: entities.ShippingStatusPickedUp, wantOrder: entities.OrderStatusShipped},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newShippingFixture(t)
			order := f.seedOrder(t, entities.OrderStatusConfirmed)
			shipping, err := f.shippings.CreateShipping(context.Background(), service.CreateShippingInput{OrderID: order.ID, Method: "standard"})
			require.NoError(t, err)
			f.rec.Reset()

			_, err = f.shippings.UpdateShippingStatus(context.Background(), shipping.ID, tc.status, "")
			require.NoError(t, err)

			got := f.order(t, order.ID)
			assert.Equal(t, tc.wantOrder, got.Status)
			assert.Equal(t, tc.wantReason, got.CancelReason)

			types := f.rec.Types()
			assert.Equal(t, events.TypeShippingStatusUpdated, types[0])
			if tc.wantEvent == "" {
				assert.Len(t, types, 1)
				return
			}
			require.Len(t, types, 2)
			assert.Equal(t, tc.wantEvent, types[1])
		})
	}
}

func TestShippingService_InvalidTransitions(t *testing.T) {
	f := newShippingFixture(t)
	order := f.seedOrder(t, entities.OrderStatusConfirmed)
	shipping, err := f.shippings.CreateShipping(context.Background(), service.CreateShippingInput{OrderID: order.ID, Method: "standard"})
	require.NoError(t, err)

	for _, status := range []entities.ShippingStatus{entities.ShippingStatusPending, "LOST"} {
		_, err := f.shippings.UpdateShippingStatus(context.Background(), shipping.ID, status, "")
		assert.ErrorIs(t, err, entities.ErrShippingStatus, status)
	}

	_, err = f.shippings.UpdateShippingStatus(context.Background(), "missing", entities.ShippingStatusInTransit, "")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	details, err := f.shippings.GetShipping(context.Background(), shipping.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ShippingStatusPending, details.Status)
	assert.Empty(t, details.History)
}
