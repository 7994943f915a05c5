package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"toolrental-charges/internal/domain"
)

type AgreementService interface {
	// Calculate validates the request and returns a fully itemised agreement.
	// Errors match domain.ErrInvalidArgument or domain.ErrComputationFailure.
	Calculate(ctx context.Context, toolCode string, rentalDays int, discountPercent decimal.Decimal, checkoutDate time.Time) (*domain.RentalAgreement, error)
	ListCatalog(ctx context.Context) ([]domain.ToolListing, error)
}
