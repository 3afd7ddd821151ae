package plan

import "time"

// Schedule computes the due date of every installment: the same calendar
// day as the first due date, one additional month per installment. When a
// target month is shorter than the anchor day the date clamps to that
// month's last day instead of overflowing into the next month, and the
// anchor day is kept for later months (2025-01-31 -> 02-28 -> 03-31).
func Schedule(firstDueDate time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}

	year, month, day := firstDueDate.Date()
	loc := firstDueDate.Location()

	dates := make([]time.Time, count)
	for i := 0; i < count; i++ {
		dates[i] = addMonthsClamped(year, month, day, i, loc)
	}
	return dates
}

// addMonthsClamped adds n months to the anchor date, clamping the day to
// the target month's length. time.Date is not used with the raw day because
// it normalizes overflow (Jan 31 + 1 month would become Mar 3).
func addMonthsClamped(year int, month time.Month, day, n int, loc *time.Location) time.Time {
	// Normalize the target year/month via the first of the month.
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, loc)
	if last := daysInMonth(first.Year(), first.Month(), loc); day > last {
		return time.Date(first.Year(), first.Month(), last, 0, 0, 0, 0, loc)
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
