package schedulerController

import (
	"lms/utils"
	"time"
)

// nextTargetDay returns midnight of the next occurrence of target relative to
// now. With includeToday, a "now" already on the target weekday resolves to
// today; otherwise it rolls a full week forward.
func nextTargetDay(now time.Time, target time.Weekday, includeToday bool) time.Time {
	daysToAdd := (int(target) - int(now.Weekday()) + 7) % 7
	if daysToAdd == 0 && !includeToday {
		daysToAdd = 7
	}
	return utils.StartOfDay(now.AddDate(0, 0, daysToAdd))
}

// weekNumber returns the ISO 8601 week number of t
func weekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// formatWeekDate renders the human-readable form sent alongside the raw date
func formatWeekDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
