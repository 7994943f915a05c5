package utils

import (
	"context"
	"testing"
	"time"

	"toolrental-charges/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdayOnly() *domain.ToolRatePolicy {
	return &domain.ToolRatePolicy{Code: "JAKD", DailyCharge: decimal.RequireFromString("2.99"), WeekdayCharge: true}
}

func everyDay() *domain.ToolRatePolicy {
	return &domain.ToolRatePolicy{Code: "LADW", DailyCharge: decimal.RequireFromString("1.99"), WeekdayCharge: true, WeekendCharge: true}
}

func countDays(t *testing.T, checkout, due time.Time, policy *domain.ToolRatePolicy) int {
	t.Helper()
	n, err := ChargeableDays(context.Background(), checkout, due, policy)
	require.NoError(t, err)
	return n
}

func TestDueDate(t *testing.T) {
	t.Run("Same month", func(t *testing.T) {
		assert.Equal(t, date(2022, 3, 6), DueDate(date(2022, 3, 1), 5))
	})

	t.Run("Cross year boundary", func(t *testing.T) {
		assert.Equal(t, date(2023, 1, 4), DueDate(date(2022, 12, 30), 5))
	})

	t.Run("Leap day", func(t *testing.T) {
		assert.Equal(t, date(2024, 3, 1), DueDate(date(2024, 2, 28), 2))
	})

	t.Run("Clock and zone are dropped", func(t *testing.T) {
		loc := time.FixedZone("UTC-7", -7*3600)
		checkout := time.Date(2022, 3, 1, 23, 30, 0, 0, loc)
		assert.Equal(t, date(2022, 3, 2), DueDate(checkout, 1))
	})
}

func TestIsChargeableDay(t *testing.T) {
	t.Run("Weekday tool", func(t *testing.T) {
		p := weekdayOnly()
		assert.True(t, IsChargeableDay(date(2022, 3, 7), p))  // Monday
		assert.False(t, IsChargeableDay(date(2022, 3, 5), p)) // Saturday
		assert.False(t, IsChargeableDay(date(2022, 7, 4), p)) // Independence Day
		assert.False(t, IsChargeableDay(date(2022, 9, 5), p)) // Labor Day
	})

	t.Run("Holiday flag is ignored", func(t *testing.T) {
		p := weekdayOnly()
		p.HolidayCharge = true
		assert.False(t, IsChargeableDay(date(2022, 7, 4), p))
		assert.False(t, IsChargeableDay(date(2022, 9, 5), p))
	})

	t.Run("Weekend charging ignores holidays", func(t *testing.T) {
		p := everyDay()
		assert.True(t, IsChargeableDay(date(2021, 7, 4), p)) // July 4 on a Sunday
		assert.True(t, IsChargeableDay(date(2022, 3, 6), p))
	})

	t.Run("Weekend only tool", func(t *testing.T) {
		p := &domain.ToolRatePolicy{WeekendCharge: true}
		assert.True(t, IsChargeableDay(date(2022, 3, 5), p))
		assert.False(t, IsChargeableDay(date(2022, 3, 7), p))
	})
}

func TestChargeableDays(t *testing.T) {
	t.Run("Checkout day excluded, due date included", func(t *testing.T) {
		// Fri 2022-03-04 to Mon 2022-03-07: Sat, Sun, Mon
		assert.Equal(t, 1, countDays(t, date(2022, 3, 4), date(2022, 3, 7), weekdayOnly()))
		assert.Equal(t, 3, countDays(t, date(2022, 3, 4), date(2022, 3, 7), everyDay()))
	})

	t.Run("Independence Day week", func(t *testing.T) {
		// Sun 2022-07-03 to Wed 2022-07-06
		assert.Equal(t, 2, countDays(t, date(2022, 7, 3), date(2022, 7, 6), weekdayOnly()))
	})

	t.Run("Labor Day week", func(t *testing.T) {
		// Thu 2015-09-03 to Tue 2015-09-08: Fri, Sat, Sun, Mon (holiday), Tue
		assert.Equal(t, 2, countDays(t, date(2015, 9, 3), date(2015, 9, 8), weekdayOnly()))
	})

	t.Run("Holiday year follows the date", func(t *testing.T) {
		// July 4 2030 is a Thursday
		assert.Equal(t, 1, countDays(t, date(2030, 7, 3), date(2030, 7, 5), weekdayOnly()))
	})

	t.Run("Empty range", func(t *testing.T) {
		assert.Equal(t, 0, countDays(t, date(2022, 3, 1), date(2022, 3, 1), everyDay()))
	})

	t.Run("Cancelled context stops counting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		checkout := date(2022, 1, 1)
		n, err := ChargeableDays(ctx, checkout, DueDate(checkout, 1_000_000), everyDay())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, n)
	})

	t.Run("Bounded by rental days", func(t *testing.T) {
		checkout := date(2022, 1, 1)
		for days := 1; days <= 400; days += 13 {
			n := countDays(t, checkout, DueDate(checkout, days), everyDay())
			assert.Equal(t, days, n)
			n = countDays(t, checkout, DueDate(checkout, days), weekdayOnly())
			assert.True(t, n >= 0 && n <= days)
		}
	})
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0.2235", "0.22"},
		{"0.225", "0.23"},
		{"0.224999", "0.22"},
		{"1.005", "1.01"},
		{"9.950000000000001", "9.95"},
		{"2.5", "2.50"},
		{"-0.125", "-0.13"},
		{"0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundHalfUp(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestComputeCharges(t *testing.T) {
	t.Run("No discount", func(t *testing.T) {
		b := ComputeCharges(5, decimal.RequireFromString("1.99"), decimal.Zero)
		assert.Equal(t, "9.95", b.PreDiscountCharge.StringFixed(2))
		assert.Equal(t, "0.00", b.DiscountAmount.StringFixed(2))
		assert.Equal(t, "9.95", b.FinalCharge.StringFixed(2))
	})

	t.Run("Discount rounded half up", func(t *testing.T) {
		b := ComputeCharges(1, decimal.RequireFromString("1.49"), decimal.NewFromInt(15))
		assert.Equal(t, "1.49", b.PreDiscountCharge.StringFixed(2))
		assert.Equal(t, "0.22", b.DiscountAmount.StringFixed(2))
		assert.Equal(t, "1.27", b.FinalCharge.StringFixed(2))
	})

	t.Run("Discount uses the unrounded charge", func(t *testing.T) {
		// 0.125 rounds to 0.13; 50% of 0.125 is 0.0625 -> 0.06.
		// Taking 50% of the rounded 0.13 would give 0.065 -> 0.07.
		b := ComputeCharges(1, decimal.RequireFromString("0.125"), decimal.NewFromInt(50))
		assert.Equal(t, "0.13", b.PreDiscountCharge.StringFixed(2))
		assert.Equal(t, "0.06", b.DiscountAmount.StringFixed(2))
		assert.Equal(t, "0.07", b.FinalCharge.StringFixed(2))
	})

	t.Run("Final is the exact difference", func(t *testing.T) {
		for days := 0; days < 30; days++ {
			for pct := int64(0); pct <= 100; pct += 7 {
				b := ComputeCharges(days, decimal.RequireFromString("2.99"), decimal.NewFromInt(pct))
				assert.True(t, b.FinalCharge.Equal(b.PreDiscountCharge.Sub(b.DiscountAmount)))
				assert.True(t, b.FinalCharge.GreaterThanOrEqual(decimal.Zero))
			}
		}
	})

	t.Run("Full discount", func(t *testing.T) {
		b := ComputeCharges(3, decimal.RequireFromString("2.99"), decimal.NewFromInt(100))
		assert.Equal(t, "8.97", b.DiscountAmount.StringFixed(2))
		assert.True(t, b.FinalCharge.IsZero())
	})
}
