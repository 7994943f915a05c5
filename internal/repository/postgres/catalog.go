package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/logger"

	"github.com/lib/pq"
)

const DefaultRateTable = "tool_rates"

// LoadPolicies reads the whole rate table once. The result seeds the
// in-memory catalog; nothing is written back.
func LoadPolicies(ctx context.Context, db *sql.DB, table string) ([]domain.ToolRatePolicy, error) {
	if table == "" {
		table = DefaultRateTable
	}
	query := fmt.Sprintf(`SELECT code, tool_type, brand, daily_charge, weekday_charge, weekend_charge, holiday_charge FROM %s ORDER BY id`, pq.QuoteIdentifier(table))

	logger.DatabaseCall("LoadPolicies", query)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("LoadPolicies", 0, err)
		return nil, fmt.Errorf("failed to query rate table: %w", err)
	}
	defer rows.Close()

	var policies []domain.ToolRatePolicy
	for rows.Next() {
		var p domain.ToolRatePolicy
		if err := rows.Scan(&p.Code, &p.ToolType, &p.Brand, &p.DailyCharge, &p.WeekdayCharge, &p.WeekendCharge, &p.HolidayCharge); err != nil {
			logger.DatabaseResult("LoadPolicies", int64(len(policies)), err)
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		logger.DatabaseResult("LoadPolicies", int64(len(policies)), err)
		return nil, fmt.Errorf("failed to read rate table: %w", err)
	}
	logger.DatabaseResult("LoadPolicies", int64(len(policies)), nil)
	return policies, nil
}
