package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AgreementDateLayout is the MM/DD/YYYY layout used when rendering agreements.
const AgreementDateLayout = "01/02/2006"

// RentalRequest is one checkout as received from a caller, before validation.
type RentalRequest struct {
	ToolCode        string
	RentalDays      int
	DiscountPercent decimal.Decimal
	CheckoutDate    time.Time
}

// RentalAgreement is the itemised result of one rental transaction.
// FinalCharge always equals PreDiscountCharge minus DiscountAmount.
type RentalAgreement struct {
	ToolCode          string          `json:"tool_code"`
	ToolType          string          `json:"tool_type"`
	ToolBrand         string          `json:"tool_brand"`
	RentalDays        int             `json:"rental_days"`
	CheckoutDate      time.Time       `json:"checkout_date"`
	DueDate           time.Time       `json:"due_date"`
	DailyRentalCharge decimal.Decimal `json:"daily_rental_charge"`
	ChargeDays        int             `json:"charge_days"`
	PreDiscountCharge decimal.Decimal `json:"pre_discount_charge"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	FinalCharge       decimal.Decimal `json:"final_charge"`
}

func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (a RentalAgreement) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tool code: %s\n", a.ToolCode)
	fmt.Fprintf(&b, "Tool type: %s\n", a.ToolType)
	fmt.Fprintf(&b, "Tool brand: %s\n", a.ToolBrand)
	fmt.Fprintf(&b, "Rental days: %d\n", a.RentalDays)
	fmt.Fprintf(&b, "Check out date: %s\n", a.CheckoutDate.Format(AgreementDateLayout))
	fmt.Fprintf(&b, "Due date: %s\n", a.DueDate.Format(AgreementDateLayout))
	fmt.Fprintf(&b, "Daily rental charge: %s\n", FormatMoney(a.DailyRentalCharge))
	fmt.Fprintf(&b, "Charge days: %d\n", a.ChargeDays)
	fmt.Fprintf(&b, "Pre-discount charge: %s\n", FormatMoney(a.PreDiscountCharge))
	fmt.Fprintf(&b, "Discount percent: %s%%\n", a.DiscountPercent.String())
	fmt.Fprintf(&b, "Discount amount: %s\n", FormatMoney(a.DiscountAmount))
	fmt.Fprintf(&b, "Final charge: %s", FormatMoney(a.FinalCharge))
	return b.String()
}
