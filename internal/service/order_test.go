package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/internal/service"
	mocks "github.com/SergeyBogomolovv/marketplace-core/internal/service/mocks"
	txMocks "github.com/SergeyBogomolovv/marketplace-core/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func passthroughTx(t *testing.T) *txMocks.MockManager {
	txManager := txMocks.NewMockManager(t)
	txManager.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).Maybe()
	return txManager
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrder(status entities.OrderStatus, payment entities.PaymentState) entities.Order {
	o := entities.Order{
		ID:            "order-1",
		UserID:        "user-1",
		SellerID:      "seller-1",
		Status:        status,
		PaymentStatus: payment,
		Subtotal:      dec("500000"),
		Tax:           dec("0"),
		ShippingCost:  dec("30000"),
		Discount:      decimal.Zero,
		CreatedAt:     testNow.Add(-time.Hour),
		UpdatedAt:     testNow.Add(-time.Hour),
	}
	o.Recalculate()
	return o
}

func TestOrderService_CreateOrder(t *testing.T) {
	type MockBehavior func(orderRepo *mocks.MockOrderRepo)

	dbError := errors.New("db error")

	testCases := []struct {
		name         string
		input        service.CreateOrderInput
		mockBehavior MockBehavior
		wantTotal    string
		wantErr      error
	}{
		{
			name: "OK",
			input: service.CreateOrderInput{
				UserID: "user-1", SellerID: "seller-1",
				Subtotal: dec("100.50"), Tax: dec("10.05"), ShippingCost: dec("5"),
			},
			mockBehavior: func(orderRepo *mocks.MockOrderRepo) {
				orderRepo.EXPECT().CreateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
					return o.Status == entities.OrderStatusCreated && o.PaymentStatus == entities.PaymentStateUnpaid
				})).Return(nil)
			},
			wantTotal: "115.55",
		},
		{
			name: "negative amount",
			input: service.CreateOrderInput{
				UserID: "user-1", SellerID: "seller-1",
				Subtotal: dec("-1"), Tax: dec("0"), ShippingCost: dec("0"),
			},
			mockBehavior: func(orderRepo *mocks.MockOrderRepo) {},
			wantErr:      entities.ErrOrderNegativeAmount,
		},
		{
			name: "repo fails",
			input: service.CreateOrderInput{
				UserID: "user-1", SellerID: "seller-1",
				Subtotal: dec("1"), Tax: dec("0"), ShippingCost: dec("0"),
			},
			mockBehavior: func(orderRepo *mocks.MockOrderRepo) {
				orderRepo.EXPECT().CreateOrder(mock.Anything, mock.Anything).Return(dbError)
			},
			wantErr: dbError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orderRepo := mocks.NewMockOrderRepo(t)
			tc.mockBehavior(orderRepo)

			rec := &recorder{}
			svc := service.NewOrderService(discardLogger(), passthroughTx(t), orderRepo, mocks.NewMockCouponRedeemer(t),
				service.NewEmitter(discardLogger(), rec, nil), service.WithClock(func() time.Time { return testNow }))

			order, err := svc.CreateOrder(context.Background(), tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, rec.Events())
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, order.ID)
			assert.Equal(t, tc.wantTotal, order.Total.StringFixed(2))
			assert.Equal(t, []events.Type{events.TypeOrderCreated}, rec.Types())
		})
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	t.Run("not found is not retried", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepo(t)
		orderRepo.EXPECT().GetOrder(mock.Anything, "missing").Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		svc := service.NewOrderService(discardLogger(), passthroughTx(t), orderRepo, mocks.NewMockCouponRedeemer(t),
			service.NewEmitter(discardLogger(), &recorder{}, nil))

		_, err := svc.GetOrder(context.Background(), "missing")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("OK", func(t *testing.T) {
		want := sampleOrder(entities.OrderStatusCreated, entities.PaymentStateUnpaid)
		orderRepo := mocks.NewMockOrderRepo(t)
		orderRepo.EXPECT().GetOrder(mock.Anything, want.ID).Return(want, nil)

		svc := service.NewOrderService(discardLogger(), passthroughTx(t), orderRepo, mocks.NewMockCouponRedeemer(t),
			service.NewEmitter(discardLogger(), &recorder{}, nil))

		got, err := svc.GetOrder(context.Background(), want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	testCases := []struct {
		name    string
		status  entities.OrderStatus
		wantErr error
	}{
		{name: "created", status: entities.OrderStatusCreated},
		{name: "confirmed", status: entities.OrderStatusConfirmed},
		{name: "shipped", status: entities.OrderStatusShipped, wantErr: entities.ErrOrderNotCancellable},
		{name: "delivered", status: entities.OrderStatusDelivered, wantErr: entities.ErrOrderNotCancellable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := sampleOrder(tc.status, entities.PaymentStateUnpaid)
			orderRepo := mocks.NewMockOrderRepo(t)
			orderRepo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil)
			if tc.wantErr == nil {
				orderRepo.EXPECT().UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
					return o.Status == entities.OrderStatusCancelled && o.CancelReason == "changed my mind"
				})).Return(nil)
			}

			rec := &recorder{}
			svc := service.NewOrderService(discardLogger(), passthroughTx(t), orderRepo, mocks.NewMockCouponRedeemer(t),
				service.NewEmitter(discardLogger(), rec, nil), service.WithClock(func() time.Time { return testNow }))

			got, err := svc.CancelOrder(context.Background(), order.ID, "changed my mind")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, entities.ErrInvalidState)
				assert.Empty(t, rec.Events())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got.CancelledAt)
			assert.Equal(t, testNow, *got.CancelledAt)
			assert.Equal(t, []events.Type{events.TypeOrderCancelled}, rec.Types())
		})
	}
}

func TestOrderService_HandlePaymentEvent(t *testing.T) {
	testCases := []struct {
		name        string
		status      entities.OrderStatus
		payment     entities.PaymentState
		event       events.Event
		wantStatus  entities.OrderStatus
		wantPayment entities.PaymentState
		wantUpdate  bool
	}{
		{
			name:   "success confirms created order",
			status: entities.OrderStatusCreated, payment: entities.PaymentStatePending,
			event:      events.PaymentSucceeded{OrderID: "order-1"},
			wantStatus: entities.OrderStatusConfirmed, wantPayment: entities.PaymentStatePaid,
			wantUpdate: true,
		},
		{
			name:   "redelivered success is a no-op",
			status: entities.OrderStatusConfirmed, payment: entities.PaymentStatePaid,
			event:      events.PaymentSucceeded{OrderID: "order-1"},
			wantStatus: entities.OrderStatusConfirmed, wantPayment: entities.PaymentStatePaid,
		},
		{
			name:   "failure after paid does not downgrade",
			status: entities.OrderStatusConfirmed, payment: entities.PaymentStatePaid,
			event:      events.PaymentFailed{OrderID: "order-1", PaymentStatus: "FAILED"},
			wantStatus: entities.OrderStatusConfirmed, wantPayment: entities.PaymentStatePaid,
		},
		{
			name:   "failure keeps order created",
			status: entities.OrderStatusCreated, payment: entities.PaymentStatePending,
			event:      events.PaymentFailed{OrderID: "order-1", PaymentStatus: "FAILED"},
			wantStatus: entities.OrderStatusCreated, wantPayment: entities.PaymentStateFailed,
			wantUpdate: true,
		},
		{
			name:   "processing marks pending",
			status: entities.OrderStatusCreated, payment: entities.PaymentStateUnpaid,
			event:      events.PaymentProcessing{OrderID: "order-1"},
			wantStatus: entities.OrderStatusCreated, wantPayment: entities.PaymentStatePending,
			wantUpdate: true,
		},
		{
			name:   "cancelled payment resets to unpaid",
			status: entities.OrderStatusCreated, payment: entities.PaymentStatePending,
			event:      events.PaymentCancelled{OrderID: "order-1"},
			wantStatus: entities.OrderStatusCreated, wantPayment: entities.PaymentStateUnpaid,
			wantUpdate: true,
		},
		{
			name:   "success on cancelled order only records payment",
			status: entities.OrderStatusCancelled, payment: entities.PaymentStatePending,
			event:      events.PaymentSucceeded{OrderID: "order-1"},
			wantStatus: entities.OrderStatusCancelled, wantPayment: entities.PaymentStatePaid,
			wantUpdate: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := sampleOrder(tc.status, tc.payment)
			orderRepo := mocks.NewMockOrderRepo(t)
			orderRepo.EXPECT().GetOrderForUpdate(mock.Anything, order.ID).Return(order, nil)

			var saved entities.Order
			if tc.wantUpdate {
				orderRepo.EXPECT().UpdateOrder(mock.Anything, mock.Anything).
					RunAndReturn(func(_ context.Context, o entities.Order) error {
						saved = o
						return nil
					})
			}

			rec := &recorder{}
			svc := service.NewOrderService(discardLogger(), passthroughTx(t), orderRepo, mocks.NewMockCouponRedeemer(t),
				service.NewEmitter(discardLogger(), rec, nil), service.WithClock(func() time.Time { return testNow }))

			require.NoError(t, svc.HandlePaymentEvent(context.Background(), tc.event))

			if !tc.wantUpdate {
				assert.Empty(t, rec.Events())
				return
			}
			assert.Equal(t, tc.wantStatus, saved.Status)
			assert.Equal(t, tc.wantPayment, saved.PaymentStatus)
			assert.Equal(t, []events.Type{events.TypeOrderUpdated}, rec.Types())
		})
	}

	t.Run("non payment events are ignored", func(t *testing.T) {
		svc := service.NewOrderService(discardLogger(), passthroughTx(t), mocks.NewMockOrderRepo(t), mocks.NewMockCouponRedeemer(t),
			service.NewEmitter(discardLogger(), &recorder{}, nil))
		assert.NoError(t, svc.HandlePaymentEvent(context.Background(), events.OrderCreated{OrderID: "order-1"}))
		assert.NoError(t, svc.HandlePaymentEvent(context.Background(), events.PaymentCreated{OrderID: "order-1"}))
	})
}

func TestOrderService_ApplyCouponToOrder(t *testing.T) {
	type MockBehavior func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer)

	percent := service.Redemption{
		Coupon:     entities.Coupon{ID: "c-1", Code: "SAVE10", UsedCount: 1},
		Usage:      entities.CouponUsage{ID: "u-1", CouponID: "c-1", OrderID: "order-1", DiscountAmount: dec("50000")},
		Validation: entities.CouponValidation{Valid: true, Discount: dec("50000")},
	}
	freeShipping := service.Redemption{
		Coupon:     entities.Coupon{ID: "c-2", Code: "FREESHIP", UsedCount: 1},
		Usage:      entities.CouponUsage{ID: "u-2", CouponID: "c-2", OrderID: "order-1", DiscountAmount: dec("30000")},
		Validation: entities.CouponValidation{Valid: true, Discount: decimal.Zero, FreeShipping: true},
	}

	testCases := []struct {
		name         string
		order        entities.Order
		userID       string
		mockBehavior MockBehavior
		wantTotal    string
		wantErr      error
	}{
		{
			name:   "percentage discount",
			order:  sampleOrder(entities.OrderStatusCreated, entities.PaymentStateUnpaid),
			userID: "user-1",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer) {
				coupons.EXPECT().Redeem(mock.Anything, mock.MatchedBy(func(in service.ApplyCouponInput) bool {
					return in.OrderAmount.Equal(dec("500000")) && in.ShippingCost.Equal(dec("30000"))
				})).Return(percent, nil)
				orderRepo.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
				coupons.EXPECT().Committed(mock.Anything, percent).Return()
			},
			wantTotal: "480000",
		},
		{
			name:   "free shipping",
			order:  sampleOrder(entities.OrderStatusCreated, entities.PaymentStateUnpaid),
			userID: "user-1",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer) {
				coupons.EXPECT().Redeem(mock.Anything, mock.Anything).Return(freeShipping, nil)
				orderRepo.EXPECT().UpdateOrder(mock.Anything, mock.Anything).Return(nil)
				coupons.EXPECT().Committed(mock.Anything, freeShipping).Return()
			},
			wantTotal: "500000",
		},
		{
			name:         "other user",
			order:        sampleOrder(entities.OrderStatusCreated, entities.PaymentStateUnpaid),
			userID:       "user-2",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer) {},
			wantErr:      entities.ErrOrderNotOwned,
		},
		{
			name:         "order confirmed",
			order:        sampleOrder(entities.OrderStatusConfirmed, entities.PaymentStatePaid),
			userID:       "user-1",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer) {},
			wantErr:      entities.ErrOrderNotAwaitingSetup,
		},
		{
			name: "coupon already applied",
			order: func() entities.Order {
				o := sampleOrder(entities.OrderStatusCreated, entities.PaymentStateUnpaid)
				o.CouponCode = "OTHER"
				return o
			}(),
			userID:       "user-1",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer) {},
			wantErr:      entities.ErrOrderCouponApplied,
		},
		{
			name:   "redeem rejected",
			order:  sampleOrder(entities.OrderStatusCreated, entities.PaymentStateUnpaid),
			userID: "user-1",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, coupons *mocks.MockCouponRedeemer) {
				coupons.EXPECT().Redeem(mock.Anything, mock.Anything).Return(service.Redemption{}, entities.ErrCouponUsageLimit)
			},
			wantErr: entities.ErrCouponUsageLimit,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orderRepo := mocks.NewMockOrderRepo(t)
			coupons := mocks.NewMockCouponRedeemer(t)
			orderRepo.EXPECT().GetOrderForUpdate(mock.Anything, tc.order.ID).Return(tc.order, nil)
			tc.mockBehavior(orderRepo, coupons)

			rec := &recorder{}
			svc := service.NewOrderService(discardLogger(), passthroughTx(t), orderRepo, coupons,
				service.NewEmitter(discardLogger(), rec, nil), service.WithClock(func() time.Time { return testNow }))

			order, err := svc.ApplyCouponToOrder(context.Background(), tc.order.ID, tc.userID, "save10")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, rec.Events())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, order.Total.String())
			assert.NoError(t, order.Validate())
			assert.NotEmpty(t, order.CouponCode)
			assert.Equal(t, []events.Type{events.TypeOrderUpdated}, rec.Types())
		})
	}
}
