package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/repository"
)

// Catalog is a read-only rate catalog. It is never written after NewCatalog
// returns, so concurrent readers need no locking.
type Catalog struct {
	byCode map[string]domain.ToolRatePolicy
	order  []string
}

func NewCatalog(policies []domain.ToolRatePolicy) (*Catalog, error) {
	c := &Catalog{
		byCode: make(map[string]domain.ToolRatePolicy, len(policies)),
		order:  make([]string, 0, len(policies)),
	}
	for _, p := range policies {
		if p.Code == "" {
			return nil, fmt.Errorf("tool code is required")
		}
		if _, exists := c.byCode[p.Code]; exists {
			return nil, fmt.Errorf("duplicate tool code: %s", p.Code)
		}
		if p.DailyCharge.IsNegative() {
			return nil, fmt.Errorf("daily charge for %s must not be negative", p.Code)
		}
		c.byCode[p.Code] = p
		c.order = append(c.order, p.Code)
	}
	return c, nil
}

func (c *Catalog) GetByCode(ctx context.Context, code string) (*domain.ToolRatePolicy, error) {
	p, ok := c.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrToolNotFound, code)
	}
	return &p, nil
}

// List returns policies in the order they were seeded
func (c *Catalog) List(ctx context.Context) ([]domain.ToolRatePolicy, error) {
	policies := make([]domain.ToolRatePolicy, 0, len(c.order))
	for _, code := range c.order {
		policies = append(policies, c.byCode[code])
	}
	return policies, nil
}

// DefaultPolicies is the built-in rate table
func DefaultPolicies() []domain.ToolRatePolicy {
	return []domain.ToolRatePolicy{
		{Code: "LADW", ToolType: "Ladder", Brand: "Werner", DailyCharge: decimal.RequireFromString("1.99"), WeekdayCharge: true, WeekendCharge: true, HolidayCharge: false},
		{Code: "CHNS", ToolType: "Chainsaw", Brand: "Stihl", DailyCharge: decimal.RequireFromString("1.49"), WeekdayCharge: true, WeekendCharge: false, HolidayCharge: true},
		{Code: "JAKD", ToolType: "Jackhammer", Brand: "DeWalt", DailyCharge: decimal.RequireFromString("2.99"), WeekdayCharge: true, WeekendCharge: false, HolidayCharge: false},
		{Code: "JAKR", ToolType: "Jackhammer", Brand: "Ridgid", DailyCharge: decimal.RequireFromString("2.99"), WeekdayCharge: true, WeekendCharge: false, HolidayCharge: false},
	}
}
