package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/logger"
	"toolrental-charges/internal/repository"
	"toolrental-charges/internal/utils"
)

const tracerName = "toolrental-charges/internal/service"

var maxDiscountPercent = decimal.NewFromInt(100)

type agreementService struct {
	catalog  repository.CatalogRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	tracer   trace.Tracer
}

// NewAgreementService builds the charge engine. cache may be nil.
func NewAgreementService(catalog repository.CatalogRepository, cache repository.CacheRepository, cacheTTL time.Duration) AgreementService {
	return &agreementService{
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
		tracer:   otel.Tracer(tracerName),
	}
}

func (s *agreementService) Calculate(ctx context.Context, toolCode string, rentalDays int, discountPercent decimal.Decimal, checkoutDate time.Time) (*domain.RentalAgreement, error) {
	ctx, span := s.tracer.Start(ctx, "agreement.Calculate", trace.WithAttributes(
		attribute.String("tool.code", toolCode),
		attribute.Int("rental.days", rentalDays),
	))
	defer span.End()

	logger.EnterMethod(ctx, "agreementService.Calculate", "tool_code", toolCode, "rental_days", rentalDays, "discount_percent", discountPercent.String())

	policy, err := s.validate(ctx, toolCode, rentalDays, discountPercent)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			logger.WarnContext(ctx, "Invalid input parameters", "tool_code", toolCode, "error", err)
		} else {
			logger.ErrorContext(ctx, "Error calculating rental cost", "tool_code", toolCode, "error", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	agreement, err := s.buildAgreement(ctx, policy, rentalDays, discountPercent, checkoutDate)
	if err != nil {
		logger.ErrorContext(ctx, "Error calculating rental cost", "tool_code", toolCode, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("rental.charge_days", agreement.ChargeDays))
	logger.ExitMethod(ctx, "agreementService.Calculate", "charge_days", agreement.ChargeDays, "final_charge", agreement.FinalCharge.StringFixed(utils.MoneyPlaces))
	return agreement, nil
}

func (s *agreementService) ListCatalog(ctx context.Context) ([]domain.ToolListing, error) {
	policies, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	listings := make([]domain.ToolListing, 0, len(policies))
	for _, p := range policies {
		listings = append(listings, p.Listing())
	}
	return listings, nil
}

// validate checks day count, then discount, then tool code
func (s *agreementService) validate(ctx context.Context, toolCode string, rentalDays int, discountPercent decimal.Decimal) (*domain.ToolRatePolicy, error) {
	if rentalDays < 1 {
		return nil, domain.NewInvalidArgumentError("rental_days", "rental day count must be 1 or greater")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(maxDiscountPercent) {
		return nil, domain.NewInvalidArgumentError("discount_percent", "discount percent must be in the range 0-100")
	}

	policy, err := s.catalog.GetByCode(ctx, toolCode)
	if errors.Is(err, repository.ErrToolNotFound) {
		return nil, domain.NewInvalidArgumentError("tool_code", fmt.Sprintf("invalid tool code: %s", toolCode))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: catalog lookup: %v", domain.ErrComputationFailure, err)
	}
	return policy, nil
}

// buildAgreement never panics; internal faults and cancellation come back as ErrComputationFailure
func (s *agreementService) buildAgreement(ctx context.Context, policy *domain.ToolRatePolicy, rentalDays int, discountPercent decimal.Decimal, checkoutDate time.Time) (agreement *domain.RentalAgreement, err error) {
	defer func() {
		if r := recover(); r != nil {
			agreement = nil
			err = fmt.Errorf("%w: %v", domain.ErrComputationFailure, r)
		}
	}()

	checkout := utils.CivilDate(checkoutDate)
	due := utils.DueDate(checkout, rentalDays)
	if !due.After(checkout) {
		return nil, fmt.Errorf("%w: due date %s is not after checkout %s", domain.ErrComputationFailure, due.Format(time.DateOnly), checkout.Format(time.DateOnly))
	}

	chargeDays, err := s.chargeDays(ctx, policy, rentalDays, checkout, due)
	if err != nil {
		return nil, fmt.Errorf("%w: counting charge days: %v", domain.ErrComputationFailure, err)
	}
	if chargeDays < 0 || chargeDays > rentalDays {
		return nil, fmt.Errorf("%w: charge days %d outside 0..%d", domain.ErrComputationFailure, chargeDays, rentalDays)
	}

	charges := utils.ComputeCharges(chargeDays, policy.DailyCharge, discountPercent)
	if charges.FinalCharge.IsNegative() {
		return nil, fmt.Errorf("%w: negative final charge %s", domain.ErrComputationFailure, charges.FinalCharge.String())
	}

	return &domain.RentalAgreement{
		ToolCode:          policy.Code,
		ToolType:          policy.ToolType,
		ToolBrand:         policy.Brand,
		RentalDays:        rentalDays,
		CheckoutDate:      checkout,
		DueDate:           due,
		DailyRentalCharge: policy.DailyCharge,
		ChargeDays:        chargeDays,
		PreDiscountCharge: charges.PreDiscountCharge,
		DiscountPercent:   discountPercent,
		DiscountAmount:    charges.DiscountAmount,
		FinalCharge:       charges.FinalCharge,
	}, nil
}

// chargeDays counts chargeable days, memoising the count when a cache is configured.
// Money is always recomputed from the count so cached and fresh agreements are identical.
func (s *agreementService) chargeDays(ctx context.Context, policy *domain.ToolRatePolicy, rentalDays int, checkout, due time.Time) (int, error) {
	key := cacheKey(policy, rentalDays, checkout)
	if n, ok := s.cachedChargeDays(ctx, key, rentalDays); ok {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("cache.hit", true))
		return n, nil
	}

	n, err := utils.ChargeableDays(ctx, checkout, due, policy)
	if err != nil {
		return 0, err
	}
	s.storeChargeDays(ctx, key, n)
	return n, nil
}

// cacheKey covers every input the day count depends on
func cacheKey(policy *domain.ToolRatePolicy, rentalDays int, checkoutDate time.Time) string {
	return fmt.Sprintf("%t:%t:%d:%s",
		policy.WeekdayCharge,
		policy.WeekendCharge,
		rentalDays,
		utils.CivilDate(checkoutDate).Format(time.DateOnly),
	)
}

func (s *agreementService) cachedChargeDays(ctx context.Context, key string, rentalDays int) (int, bool) {
	if s.cache == nil {
		return 0, false
	}
	val, err := s.cache.Get(ctx, key)
	if errors.Is(err, repository.ErrCacheMiss) {
		return 0, false
	}
	if err != nil {
		logger.ExternalServiceResult(ctx, "cache", "get", err, "key", key)
		return 0, false
	}

	n, err := strconv.Atoi(val)
	if err == nil && (n < 0 || n > rentalDays) {
		err = fmt.Errorf("charge days %d outside 0..%d", n, rentalDays)
	}
	if err != nil {
		logger.ExternalServiceResult(ctx, "cache", "decode", err, "key", key)
		return 0, false
	}
	logger.ExternalServiceResult(ctx, "cache", "get", nil, "key", key)
	return n, true
}

func (s *agreementService) storeChargeDays(ctx context.Context, key string, n int) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, key, strconv.Itoa(n), s.cacheTTL)
	logger.ExternalServiceResult(ctx, "cache", "set", err, "key", key)
}
