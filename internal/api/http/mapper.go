package http

import (
	"fmt"

	"github.com/shopspring/decimal"

	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/utils"
)

// MaxRentalDays caps the day count accepted over HTTP
const MaxRentalDays = 3650

type AgreementRequest struct {
	ToolCode        string          `json:"tool_code"`
	RentalDays      int             `json:"rental_days"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CheckoutDate    string          `json:"checkout_date"`
}

type AgreementResponse struct {
	ToolCode          string `json:"tool_code"`
	ToolType          string `json:"tool_type"`
	ToolBrand         string `json:"tool_brand"`
	RentalDays        int    `json:"rental_days"`
	CheckoutDate      string `json:"checkout_date"`
	DueDate           string `json:"due_date"`
	DailyRentalCharge string `json:"daily_rental_charge"`
	ChargeDays        int    `json:"charge_days"`
	PreDiscountCharge string `json:"pre_discount_charge"`
	DiscountPercent   string `json:"discount_percent"`
	DiscountAmount    string `json:"discount_amount"`
	FinalCharge       string `json:"final_charge"`
}

type ToolResponse struct {
	ToolCode string `json:"tool_code"`
	ToolType string `json:"tool_type"`
	Brand    string `json:"brand"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ToRentalRequest parses the checkout date and rejects day counts above MaxRentalDays.
// The remaining rules are left to the engine.
func (r AgreementRequest) ToRentalRequest() (domain.RentalRequest, error) {
	if r.RentalDays > MaxRentalDays {
		return domain.RentalRequest{}, domain.NewInvalidArgumentError("rental_days", fmt.Sprintf("rental day count must be %d or fewer", MaxRentalDays))
	}
	checkout, err := utils.ParseCheckoutDate(r.CheckoutDate)
	if err != nil {
		return domain.RentalRequest{}, domain.NewInvalidArgumentError("checkout_date", err.Error())
	}
	return domain.RentalRequest{
		ToolCode:        r.ToolCode,
		RentalDays:      r.RentalDays,
		DiscountPercent: r.DiscountPercent,
		CheckoutDate:    checkout,
	}, nil
}

func MapAgreementToResponse(a *domain.RentalAgreement) AgreementResponse {
	return AgreementResponse{
		ToolCode:          a.ToolCode,
		ToolType:          a.ToolType,
		ToolBrand:         a.ToolBrand,
		RentalDays:        a.RentalDays,
		CheckoutDate:      a.CheckoutDate.Format(domain.AgreementDateLayout),
		DueDate:           a.DueDate.Format(domain.AgreementDateLayout),
		DailyRentalCharge: a.DailyRentalCharge.StringFixed(utils.MoneyPlaces),
		ChargeDays:        a.ChargeDays,
		PreDiscountCharge: a.PreDiscountCharge.StringFixed(utils.MoneyPlaces),
		DiscountPercent:   a.DiscountPercent.String(),
		DiscountAmount:    a.DiscountAmount.StringFixed(utils.MoneyPlaces),
		FinalCharge:       a.FinalCharge.StringFixed(utils.MoneyPlaces),
	}
}

func MapListingsToResponse(listings []domain.ToolListing) []ToolResponse {
	res := make([]ToolResponse, 0, len(listings))
	for _, l := range listings {
		res = append(res, ToolResponse{ToolCode: l.Code, ToolType: l.ToolType, Brand: l.Brand})
	}
	return res
}
