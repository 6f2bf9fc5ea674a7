package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/events"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/trm"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const couponCachePrefix = "coupon:"

type ValidateCouponInput struct {
	Code        string
	UserID      string
	OrderAmount decimal.Decimal
}

type ApplyCouponInput struct {
	Code        string
	UserID      string
	OrderID     string
	OrderAmount decimal.Decimal
	// ShippingCost пишется в usage как сумма скидки для FREE_SHIPPING.
	ShippingCost decimal.Decimal
}

type CreateCouponInput struct {
	Code                  string
	Type                  entities.CouponType
	Value                 decimal.Decimal
	MinimumOrderAmount    decimal.NullDecimal
	MaximumDiscountAmount decimal.NullDecimal
	UsageLimit            int
	UsageLimitPerUser     int
	StartDate             time.Time
	EndDate               time.Time
	IsActive              bool
	IsPublic              bool
	CreatedBy             string
}

// Redemption - результат успешного применения купона.
type Redemption struct {
	Coupon     entities.Coupon
	Usage      entities.CouponUsage
	Validation entities.CouponValidation
}

type couponService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      CouponRepo
	cache     Cache
	emitter   *Emitter
	now       func() time.Time
}

func NewCouponService(logger *slog.Logger, txManager trm.Manager, repo CouponRepo, cache Cache, emitter *Emitter, opts ...Option) *couponService {
	o := newOptions(opts)
	return &couponService{
		logger:    logger.With(slog.String("service", "coupon")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		emitter:   emitter,
		now:       o.now,
	}
}

func (s *couponService) CreateCoupon(ctx context.Context, in CreateCouponInput) (entities.Coupon, error) {
	ctx, span := tracer.Start(ctx, "CouponService.CreateCoupon")
	defer span.End()

	now := s.now()
	coupon := entities.Coupon{
		ID:                    uuid.NewString(),
		Code:                  entities.NormalizeCouponCode(in.Code),
		Type:                  in.Type,
		Value:                 in.Value,
		MinimumOrderAmount:    in.MinimumOrderAmount,
		MaximumDiscountAmount: in.MaximumDiscountAmount,
		UsageLimit:            in.UsageLimit,
		UsageLimitPerUser:     in.UsageLimitPerUser,
		StartDate:             in.StartDate,
		EndDate:               in.EndDate,
		IsActive:              in.IsActive,
		IsPublic:              in.IsPublic,
		CreatedBy:             in.CreatedBy,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := coupon.Validate(); err != nil {
		return entities.Coupon{}, err
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return entities.Coupon{}, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.InfoContext(ctx, "coupon created", slog.String("code", coupon.Code), slog.String("type", string(coupon.Type)))
	s.emitter.Emit(ctx, events.CouponCreated{
		CouponID:   coupon.ID,
		Code:       coupon.Code,
		CouponType: string(coupon.Type),
		Value:      coupon.Value,
		CreatedBy:  coupon.CreatedBy,
		CreatedAt:  now,
	})
	return coupon, nil
}

// GetCoupon читает купон через кэш. Кэш может отставать по used_count,
// применение всегда перечитывает строку под блокировкой.
func (s *couponService) GetCoupon(ctx context.Context, code string) (entities.Coupon, error) {
	code = entities.NormalizeCouponCode(code)
	key := couponCachePrefix + code

	if data, ok := s.cache.Get(ctx, key); ok {
		var coupon entities.Coupon
		err := coupon.Unmarshal(data)
		if err == nil {
			return coupon, nil
		}
		s.logger.WarnContext(ctx, "failed to unmarshal cached coupon", slog.String("code", code), slog.Any("error", err))
		s.cache.Delete(ctx, key)
	}

	var coupon entities.Coupon
	fn := func() error {
		var err error
		coupon, err = s.repo.GetCouponByCode(ctx, code)
		return err
	}
	if err := utils.Retry(readRetry, fn, entities.ErrCouponNotFound); err != nil {
		return entities.Coupon{}, err
	}

	if data, err := coupon.Marshal(); err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal coupon", slog.String("code", code), slog.Any("error", err))
	} else {
		s.cache.Set(ctx, key, data)
	}
	return coupon, nil
}

// ValidateCoupon не меняет состояние. Отказ возвращается в Reason, а не ошибкой.
func (s *couponService) ValidateCoupon(ctx context.Context, in ValidateCouponInput) (entities.CouponValidation, error) {
	ctx, span := tracer.Start(ctx, "CouponService.ValidateCoupon")
	defer span.End()

	coupon, err := s.GetCoupon(ctx, in.Code)
	if err != nil {
		return entities.CouponValidation{}, err
	}

	usages, err := s.repo.CountCouponUsages(ctx, coupon.ID, in.UserID)
	if err != nil {
		return entities.CouponValidation{}, err
	}

	return coupon.Evaluate(in.UserID, in.OrderAmount, usages, s.now()), nil
}

// ApplyCoupon - самостоятельное применение в своей транзакции.
func (s *couponService) ApplyCoupon(ctx context.Context, in ApplyCouponInput) (Redemption, error) {
	ctx, span := tracer.Start(ctx, "CouponService.ApplyCoupon")
	defer span.End()

	redemption, err := s.Redeem(ctx, in)
	if err != nil {
		return Redemption{}, err
	}
	s.Committed(ctx, redemption)
	return redemption, nil
}

// Redeem применяет купон в транзакции из контекста (или в новой).
// Строка купона блокируется, поэтому параллельные применения одного купона
// выполняются по очереди и не могут вместе пройти проверку лимитов.
// После коммита внешней транзакции вызывающий обязан вызвать Committed.
func (s *couponService) Redeem(ctx context.Context, in ApplyCouponInput) (Redemption, error) {
	var redemption Redemption

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		coupon, err := s.repo.GetCouponByCodeForUpdate(ctx, entities.NormalizeCouponCode(in.Code))
		if err != nil {
			return err
		}

		usages, err := s.repo.CountCouponUsages(ctx, coupon.ID, in.UserID)
		if err != nil {
			return err
		}

		now := s.now()
		res := coupon.Evaluate(in.UserID, in.OrderAmount, usages, now)
		if !res.Valid {
			return entities.ReasonError(res.Reason)
		}

		used, err := s.repo.IncrementCouponUsage(ctx, coupon.ID)
		if err != nil {
			return err
		}
		coupon.UsedCount = used
		coupon.UpdatedAt = now

		discount := res.Discount
		if res.FreeShipping {
			discount = in.ShippingCost
		}
		usage := entities.CouponUsage{
			ID:             uuid.NewString(),
			CouponID:       coupon.ID,
			UserID:         in.UserID,
			OrderID:        in.OrderID,
			DiscountAmount: discount,
			UsedAt:         now,
		}
		if err := s.repo.CreateCouponUsage(ctx, usage); err != nil {
			return err
		}

		redemption = Redemption{Coupon: coupon, Usage: usage, Validation: res}
		return nil
	})
	if err != nil {
		result := entities.ReasonOf(err)
		if result == "" {
			result = "error"
		}
		couponApplications.WithLabelValues(result).Inc()
		return Redemption{}, err
	}

	couponApplications.WithLabelValues("applied").Inc()
	return redemption, nil
}

// Committed сбрасывает кэш купона и отправляет CouponApplied.
func (s *couponService) Committed(ctx context.Context, r Redemption) {
	s.cache.Delete(ctx, couponCachePrefix+r.Coupon.Code)

	s.logger.InfoContext(ctx, "coupon applied",
		slog.String("code", r.Coupon.Code),
		slog.String("order_id", r.Usage.OrderID),
		slog.Int("used_count", r.Coupon.UsedCount),
	)
	s.emitter.Emit(ctx, events.CouponApplied{
		CouponID:       r.Coupon.ID,
		UsageID:        r.Usage.ID,
		Code:           r.Coupon.Code,
		UserID:         r.Usage.UserID,
		OrderID:        r.Usage.OrderID,
		DiscountAmount: r.Usage.DiscountAmount,
		UsedCount:      r.Coupon.UsedCount,
		UsedAt:         r.Usage.UsedAt,
	})
}
