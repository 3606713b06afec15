// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// monthAbbreviations maps months to Portuguese abbreviations.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Fev",
	time.March:     "Mar",
	time.April:     "Abr",
	time.May:       "Mai",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Ago",
	time.September: "Set",
	time.October:   "Out",
	time.November:  "Nov",
	time.December:  "Dez",
}

// MonthLabel returns a human-readable label for a month, e.g. "Mar 2024".
func MonthLabel(month time.Time) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[month.Month()], month.Year())
}

// PeriodInfo holds the bounds of a single month.
type PeriodInfo struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
}

// MonthSeries returns the count months ending with the month of last,
// oldest first, so that charts have no gaps.
func MonthSeries(last time.Time, count int) []PeriodInfo {
	periods := make([]PeriodInfo, 0, count)
	first := entity.AddMonths(entity.MonthStart(last), -(count - 1))
	for i := 0; i < count; i++ {
		start := entity.AddMonths(first, i)
		periods = append(periods, PeriodInfo{
			PeriodStart: start,
			PeriodEnd:   entity.MonthEnd(start),
			PeriodLabel: MonthLabel(start),
		})
	}
	return periods
}

// resolveMonth parses a "YYYY-MM" month. An empty month is the current
// month as observed in loc.
func resolveMonth(month string, clock adapter.Clock, loc *time.Location) (time.Time, error) {
	if month == "" {
		return entity.MonthStart(entity.TodayIn(clock.Now(), loc)), nil
	}
	parsed, err := entity.ParseMonth(month)
	if err != nil {
		return time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDashboardMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidDashboardMonth,
		)
	}
	return parsed, nil
}
