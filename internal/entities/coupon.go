package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponPercentage   CouponType = "PERCENTAGE"
	CouponFixedAmount  CouponType = "FIXED_AMOUNT"
	CouponFreeShipping CouponType = "FREE_SHIPPING"
	CouponBuyXGetY     CouponType = "BUY_X_GET_Y"
)

// NormalizeCouponCode приводит код к виду, в котором он хранится.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (t CouponType) Valid() bool {
	switch t {
	case CouponPercentage, CouponFixedAmount, CouponFreeShipping, CouponBuyXGetY:
		return true
	}
	return false
}

type Coupon struct {
	ID                    string
	Code                  string
	Type                  CouponType
	Value                 decimal.Decimal
	MinimumOrderAmount    decimal.NullDecimal
	MaximumDiscountAmount decimal.NullDecimal
	UsageLimit            int
	UsageLimitPerUser     int
	UsedCount             int
	StartDate             time.Time
	EndDate               time.Time
	IsActive              bool
	IsPublic              bool
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type CouponUsage struct {
	ID             string
	CouponID       string
	UserID         string
	OrderID        string
	DiscountAmount decimal.Decimal
	UsedAt         time.Time
}

// CouponValidation - результат проверки купона против контекста заказа.
type CouponValidation struct {
	Valid        bool
	Reason       string
	Discount     decimal.Decimal
	FreeShipping bool
	BuyXGetY     bool
}

// Коды причин отказа, в порядке проверки.
const (
	ReasonInactive      = "COUPON_INACTIVE"
	ReasonNotAvailable  = "COUPON_NOT_AVAILABLE"
	ReasonNotStarted    = "COUPON_NOT_STARTED"
	ReasonEnded         = "COUPON_ENDED"
	ReasonUsageLimit    = "USAGE_LIMIT_REACHED"
	ReasonUserLimit     = "USER_LIMIT_REACHED"
	ReasonMinimumAmount = "MINIMUM_AMOUNT_NOT_MET"
)

var reasonErrors = map[string]error{
	ReasonInactive:      ErrCouponInactive,
	ReasonNotAvailable:  ErrCouponNotAvailable,
	ReasonNotStarted:    ErrCouponNotStarted,
	ReasonEnded:         ErrCouponEnded,
	ReasonUsageLimit:    ErrCouponUsageLimit,
	ReasonUserLimit:     ErrCouponUserLimit,
	ReasonMinimumAmount: ErrCouponMinimumAmount,
}

// ReasonError переводит код причины в ошибку из таксономии.
func ReasonError(reason string) error {
	if err, ok := reasonErrors[reason]; ok {
		return err
	}
	return ErrInvalidState
}

// ReasonOf - обратное отображение для ответов API.
func ReasonOf(err error) string {
	for reason, e := range reasonErrors {
		if errors.Is(err, e) {
			return reason
		}
	}
	return ""
}

// Validate проверяет определение купона перед сохранением.
func (c *Coupon) Validate() error {
	hundred := decimal.NewFromInt(100)
	switch {
	case c.Code == "":
		return fmt.Errorf("%w: code is required", ErrCouponInvalid)
	case !c.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrCouponInvalid, c.Type)
	case c.Value.IsNegative():
		return fmt.Errorf("%w: value must be non-negative", ErrCouponInvalid)
	case (c.Type == CouponPercentage || c.Type == CouponFixedAmount) && !c.Value.IsPositive():
		return fmt.Errorf("%w: value must be positive", ErrCouponInvalid)
	case c.Type == CouponPercentage && c.Value.GreaterThan(hundred):
		return fmt.Errorf("%w: percentage can not exceed 100", ErrCouponInvalid)
	case c.MinimumOrderAmount.Valid && c.MinimumOrderAmount.Decimal.IsNegative():
		return fmt.Errorf("%w: minimum order amount must be non-negative", ErrCouponInvalid)
	case c.MaximumDiscountAmount.Valid && c.MaximumDiscountAmount.Decimal.IsNegative():
		return fmt.Errorf("%w: maximum discount must be non-negative", ErrCouponInvalid)
	case c.UsageLimit < 1 || c.UsageLimitPerUser < 1:
		return fmt.Errorf("%w: usage limits must be at least 1", ErrCouponInvalid)
	case !c.EndDate.After(c.StartDate):
		return fmt.Errorf("%w: end date must be after start date", ErrCouponInvalid)
	}
	return nil
}

// Check прогоняет цепочку проверок. Первая неудачная определяет причину.
// userUsages - сколько раз пользователь уже применял этот купон.
func (c *Coupon) Check(userID string, orderAmount decimal.Decimal, userUsages int, now time.Time) string {
	switch {
	case !c.IsActive:
		return ReasonInactive
	case !c.IsPublic && c.CreatedBy != userID:
		return ReasonNotAvailable
	case now.Before(c.StartDate):
		return ReasonNotStarted
	case now.After(c.EndDate):
		return ReasonEnded
	case c.UsedCount >= c.UsageLimit:
		return ReasonUsageLimit
	case userUsages >= c.UsageLimitPerUser:
		return ReasonUserLimit
	case c.MinimumOrderAmount.Valid && orderAmount.LessThan(c.MinimumOrderAmount.Decimal):
		return ReasonMinimumAmount
	}
	return ""
}

// Discount считает денежную скидку. FREE_SHIPPING и BUY_X_GET_Y
// дают нулевую скидку здесь, их эффект применяет вызывающий код.
func (c *Coupon) Discount(orderAmount decimal.Decimal) CouponValidation {
	res := CouponValidation{Valid: true, Discount: decimal.Zero}

	switch c.Type {
	case CouponPercentage:
		res.Discount = orderAmount.Mul(c.Value).Div(decimal.NewFromInt(100))
	case CouponFixedAmount:
		res.Discount = decimal.Min(c.Value, orderAmount)
	case CouponFreeShipping:
		res.FreeShipping = true
	case CouponBuyXGetY:
		res.BuyXGetY = true
	}

	if c.MaximumDiscountAmount.Valid && res.Discount.GreaterThan(c.MaximumDiscountAmount.Decimal) {
		res.Discount = c.MaximumDiscountAmount.Decimal
	}
	if res.Discount.IsNegative() {
		res.Discount = decimal.Zero
	}
	res.Discount = res.Discount.Round(2)
	return res
}

// Evaluate = Check + Discount.
func (c *Coupon) Evaluate(userID string, orderAmount decimal.Decimal, userUsages int, now time.Time) CouponValidation {
	if reason := c.Check(userID, orderAmount, userUsages, now); reason != "" {
		return CouponValidation{Reason: reason, Discount: decimal.Zero}
	}
	return c.Discount(orderAmount)
}

func (c *Coupon) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Coupon) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(c)
}
