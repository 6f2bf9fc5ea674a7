package entities

import (
	"errors"
	"fmt"
)

// Классы ошибок. Конкретные ошибки оборачивают один из них,
// поэтому вызывающий код проверяет класс через errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrExpired          = errors.New("expired")
	ErrLimitExceeded    = errors.New("limit exceeded")
	ErrInvalidInput     = errors.New("invalid input")
)

var (
	ErrOrderNotFound         = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderAmountsMismatch  = fmt.Errorf("%w: order total does not match its components", ErrInvalidInput)
	ErrOrderNegativeAmount   = fmt.Errorf("%w: order amounts must be non-negative", ErrInvalidInput)
	ErrOrderNotCancellable   = fmt.Errorf("%w: order can not be cancelled after shipping", ErrInvalidState)
	ErrOrderCouponApplied    = fmt.Errorf("%w: order already has a coupon", ErrInvalidState)
	ErrOrderNotOwned         = fmt.Errorf("%w: order belongs to another user", ErrInvalidState)
	ErrOrderNotConfirmed     = fmt.Errorf("%w: order is not confirmed", ErrInvalidState)
	ErrOrderNotAwaitingSetup = fmt.Errorf("%w: order is past checkout", ErrInvalidState)

	ErrPaymentNotFound       = fmt.Errorf("payment %w", ErrNotFound)
	ErrPaymentExists         = fmt.Errorf("%w: payment already exists for order", ErrConflict)
	ErrPaymentNotPending     = fmt.Errorf("%w: payment is not pending", ErrInvalidState)
	ErrPaymentFinalized      = fmt.Errorf("%w: payment is already finalized", ErrInvalidState)
	ErrPaymentExpired        = fmt.Errorf("payment %w", ErrExpired)
	ErrPaymentBadSignature   = fmt.Errorf("payment callback has %w", ErrInvalidSignature)
	ErrPaymentMethodNotFound = fmt.Errorf("payment method %w", ErrNotFound)
	ErrPaymentMethodInactive = fmt.Errorf("%w: payment method is inactive", ErrInvalidState)
	ErrPaymentAmount         = fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)

	ErrCouponNotFound      = fmt.Errorf("coupon %w", ErrNotFound)
	ErrCouponExists        = fmt.Errorf("%w: coupon code already exists", ErrConflict)
	ErrCouponInactive      = fmt.Errorf("%w: coupon is inactive", ErrInvalidState)
	ErrCouponNotAvailable  = fmt.Errorf("%w: coupon is not available to this user", ErrInvalidState)
	ErrCouponNotStarted    = fmt.Errorf("%w: coupon is not active yet", ErrInvalidState)
	ErrCouponEnded         = fmt.Errorf("%w: coupon has ended", ErrInvalidState)
	ErrCouponUsageLimit    = fmt.Errorf("%w: coupon usage limit reached", ErrLimitExceeded)
	ErrCouponUserLimit     = fmt.Errorf("%w: coupon usage limit per user reached", ErrLimitExceeded)
	ErrCouponMinimumAmount = fmt.Errorf("%w: order amount is below coupon minimum", ErrLimitExceeded)
	ErrCouponAlreadyUsed   = fmt.Errorf("%w: coupon already used for this order", ErrConflict)
	ErrCouponInvalid       = fmt.Errorf("%w: coupon definition is invalid", ErrInvalidInput)

	ErrShippingNotFound = fmt.Errorf("shipping %w", ErrNotFound)
	ErrShippingExists   = fmt.Errorf("%w: shipping already exists for order", ErrConflict)
	ErrShippingClosed   = fmt.Errorf("%w: shipping is closed", ErrInvalidState)
	ErrShippingStatus   = fmt.Errorf("%w: shipping status transition is not allowed", ErrInvalidState)
)
