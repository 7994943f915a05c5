package utils

import (
	"fmt"
	"strings"
	"time"

	"toolrental-charges/internal/domain"
)

// checkoutDateLayouts are tried in order when parsing a checkout date
var checkoutDateLayouts = []string{
	time.DateOnly,
	domain.AgreementDateLayout,
	"01/02/06",
}

// ParseCheckoutDate accepts YYYY-MM-DD, MM/DD/YYYY or MM/DD/YY
func ParseCheckoutDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range checkoutDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid checkout date %q, expected YYYY-MM-DD or MM/DD/YY", value)
}
