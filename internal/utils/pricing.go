package utils

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"toolrental-charges/internal/calendar"
	"toolrental-charges/internal/domain"
)

// MoneyPlaces is the number of decimal places kept on every charged amount
const MoneyPlaces = 2

// ChargeBreakdown holds the rounded monetary amounts of one agreement
type ChargeBreakdown struct {
	PreDiscountCharge decimal.Decimal
	DiscountAmount    decimal.Decimal
	FinalCharge       decimal.Decimal
}

// CivilDate drops the clock and zone from t, keeping its calendar date
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueDate returns the checkout date plus rentalDays calendar days
func DueDate(checkout time.Time, rentalDays int) time.Time {
	return CivilDate(checkout).AddDate(0, 0, rentalDays)
}

// IsChargeableDay applies the policy to a single date.
// Weekends follow WeekendCharge regardless of holidays; holidays suppress
// weekday charging whatever HolidayCharge says.
func IsChargeableDay(d time.Time, policy *domain.ToolRatePolicy) bool {
	if calendar.IsWeekend(d) {
		return policy.WeekendCharge
	}
	return policy.WeekdayCharge && !calendar.IsHoliday(d)
}

// cancelCheckInterval is how many days are counted between context checks
const cancelCheckInterval = 1024

// ChargeableDays counts chargeable dates after checkout up to and including due.
// It stops with ctx.Err() once ctx is done.
func ChargeableDays(ctx context.Context, checkout, due time.Time, policy *domain.ToolRatePolicy) (int, error) {
	count, visited := 0, 0
	end := CivilDate(due)
	for d := CivilDate(checkout).AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if visited%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		visited++
		if IsChargeableDay(d, policy) {
			count++
		}
	}
	return count, nil
}

// RoundHalfUp rounds to MoneyPlaces, halves going away from zero
func RoundHalfUp(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// ComputeCharges turns a day count into rounded charges.
// The discount is taken from the unrounded pre-discount charge, both amounts
// are rounded on their own and the final charge is their exact difference.
func ComputeCharges(chargeDays int, dailyCharge, discountPercent decimal.Decimal) ChargeBreakdown {
	preDiscount := dailyCharge.Mul(decimal.NewFromInt(int64(chargeDays)))
	discount := discountPercent.Shift(-2).Mul(preDiscount)

	preDiscountRounded := RoundHalfUp(preDiscount)
	discountRounded := RoundHalfUp(discount)

	return ChargeBreakdown{
		PreDiscountCharge: preDiscountRounded,
		DiscountAmount:    discountRounded,
		FinalCharge:       preDiscountRounded.Sub(discountRounded),
	}
}
