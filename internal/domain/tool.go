package domain

import "github.com/shopspring/decimal"

// ToolRatePolicy is the billing rule for one tool code.
// HolidayCharge is carried for reporting only; the charge rule never reads it.
type ToolRatePolicy struct {
	Code          string          `json:"tool_code"`
	ToolType      string          `json:"tool_type"`
	Brand         string          `json:"brand"`
	DailyCharge   decimal.Decimal `json:"daily_charge"`
	WeekdayCharge bool            `json:"weekday_charge"`
	WeekendCharge bool            `json:"weekend_charge"`
	HolidayCharge bool            `json:"holiday_charge"`
}

type ToolListing struct {
	Code     string `json:"tool_code"`
	ToolType string `json:"tool_type"`
	Brand    string `json:"brand"`
}

func (p ToolRatePolicy) Listing() ToolListing {
	return ToolListing{
		Code:     p.Code,
		ToolType: p.ToolType,
		Brand:    p.Brand,
	}
}
