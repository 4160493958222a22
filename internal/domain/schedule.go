package domain

import (
	"time"

	"github.com/leanttro/billing-service/pkg/timeutil"
)

// FirstDueDate returns the due date of a subscriber's very first invoice.
// The grace period runs from the first purchase; the invoice lands on the
// due day of the month the grace period ends in, or of the following month
// when that day falls before the end of the grace period.
func FirstDueDate(firstOrderDate time.Time, rules BillingRules) time.Time {
	purchased := timeutil.DateIn(firstOrderDate, rules.Location())
	freeUntil := purchased.AddDate(0, 0, rules.GracePeriodDays)

	due := dueDayOf(freeUntil, rules.DueDay)
	if due.Before(freeUntil) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}

// ScheduleAnchor returns the due date the generation loop counts from.
// With a prior invoice the sequence continues after the latest due date;
// otherwise the anchor sits one month before the first due date.
func ScheduleAnchor(latestDueDate *time.Time, firstOrderDate time.Time, rules BillingRules) time.Time {
	if latestDueDate != nil {
		return dueDayOf(timeutil.DateOf(*latestDueDate), rules.DueDay)
	}
	return FirstDueDate(firstOrderDate, rules).AddDate(0, -1, 0)
}

// NextDueDates returns n consecutive monthly due dates following anchor
func NextDueDates(anchor time.Time, n int, rules BillingRules) []time.Time {
	if n <= 0 {
		return nil
	}

	base := dueDayOf(anchor, rules.DueDay)
	dates := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		// DueDay <= 28, so AddDate never spills into the following month
		dates = append(dates, base.AddDate(0, i, 0))
	}
	return dates
}

// DaysBetween returns the number of calendar days from "from" to "to".
// Negative when "to" is earlier.
func DaysBetween(from, to time.Time) int {
	return int(timeutil.DateOf(to).Sub(timeutil.DateOf(from)).Hours() / 24)
}

func dueDayOf(t time.Time, day int) time.Time {
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}
