package sla

import (
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

// ClockPolicy controls how rule hour budgets are added to a start time.
type ClockPolicy interface {
	Add(start time.Time, hours int) time.Time
}

// WallClock adds plain wall-clock hours. Baseline policy.
type WallClock struct{}

func (WallClock) Add(start time.Time, hours int) time.Time {
	return start.Add(time.Duration(hours) * time.Hour)
}

// BusinessHoursClock counts only time inside the calendar's work window on
// business days. Weekends and configured holidays do not consume budget.
type BusinessHoursClock struct {
	Calendar Calendar
}

// PolicyFor selects the clock policy for a rule. Rules flagged business-hours
// fall back to wall clock when no calendar is configured.
func PolicyFor(rule domain.SLARule, calendar *Calendar) ClockPolicy {
	if rule.BusinessHoursOnly && calendar != nil {
		return BusinessHoursClock{Calendar: *calendar}
	}
	return WallClock{}
}

// Add advances start by the given number of working hours. Malformed work
// window values degrade to wall-clock arithmetic rather than failing.
func (c BusinessHoursClock) Add(start time.Time, hours int) time.Time {
	workStart, err1 := time.Parse("15:04", c.Calendar.WorkHours.Start)
	workEnd, err2 := time.Parse("15:04", c.Calendar.WorkHours.End)
	if err1 != nil || err2 != nil || !workEnd.After(workStart) {
		return WallClock{}.Add(start, hours)
	}

	holidays := c.Calendar.holidaySet()
	remaining := time.Duration(hours) * time.Hour
	cur := start

	for remaining > 0 {
		if _, isHoliday := holidays[cur.Format("2006-01-02")]; isHoliday ||
			cur.Weekday() == time.Saturday || cur.Weekday() == time.Sunday {
			cur = nextWorkDayStart(cur, workStart)
			continue
		}

		dayStart := time.Date(cur.Year(), cur.Month(), cur.Day(), workStart.Hour(), workStart.Minute(), 0, 0, cur.Location())
		dayEnd := time.Date(cur.Year(), cur.Month(), cur.Day(), workEnd.Hour(), workEnd.Minute(), 0, 0, cur.Location())
		if cur.Before(dayStart) {
			cur = dayStart
		}
		if !cur.Before(dayEnd) {
			cur = nextWorkDayStart(cur, workStart)
			continue
		}

		available := dayEnd.Sub(cur)
		if available >= remaining {
			return cur.Add(remaining)
		}
		remaining -= available
		cur = nextWorkDayStart(cur, workStart)
	}
	return cur
}

func nextWorkDayStart(t time.Time, workStart time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, workStart.Hour(), workStart.Minute(), 0, 0, t.Location())
}
