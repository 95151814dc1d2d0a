package report

import (
	"time"

	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/apperr"
)

// ResolveRange turns explicit dates or a named period into a DateRange
// relative to now. Explicit dates win over the period; a single explicit
// bound leaves the other side open. No dates and no period is the whole history.
func ResolveRange(now time.Time, p SummaryParams) (DateRange, error) {
	if p.StartDate != nil || p.EndDate != nil {
		var r DateRange
		if p.StartDate != nil {
			d := transaction.DateOf(*p.StartDate)
			r.Start = &d
		}
		if p.EndDate != nil {
			d := transaction.DateOf(*p.EndDate)
			r.End = &d
		}
		if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
			return DateRange{}, apperr.Validation("startDate must not be after endDate")
		}
		return r, nil
	}

	if p.Period == "" {
		return DateRange{}, nil
	}

	today := transaction.DateOf(now)
	y, m, _ := today.Date()

	var start, end time.Time
	switch p.Period {
	case PeriodWeek:
		start, end = today.AddDate(0, 0, -7), today
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case PeriodQuarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, first, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, -1)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return DateRange{}, apperr.Validation("period must be one of week, month, quarter, year")
	}

	return DateRange{Start: &start, End: &end}, nil
}

// monthsBefore steps back n calendar months from day, clamping to the last
// day of the target month instead of spilling into the next one.
func monthsBefore(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
