package sla

import (
	"testing"
	"time"

	"github.com/simrs-labs/complaint-service/internal/domain"
)

func workCalendar(holidays ...string) Calendar {
	var c Calendar
	c.WorkHours.Start = "08:00"
	c.WorkHours.End = "17:00"
	c.Holidays = holidays
	return c
}

func TestWallClockAdd(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	got := WallClock{}.Add(start, 30)
	if want := time.Date(2025, 1, 2, 16, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBusinessHoursClockAdd(t *testing.T) {
	clock := BusinessHoursClock{Calendar: workCalendar()}

	tests := []struct {
		name  string
		start time.Time
		hours int
		want  time.Time
	}{
		{
			name:  "within a single work day",
			start: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), // Monday
			hours: 4,
			want:  time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "overflows into next work day",
			start: time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC),
			hours: 4,
			want:  time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "friday afternoon budget crosses the weekend",
			start: time.Date(2025, 1, 3, 16, 0, 0, 0, time.UTC), // Friday
			hours: 2,
			want:  time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "start before work window snaps to opening",
			start: time.Date(2025, 1, 6, 6, 0, 0, 0, time.UTC),
			hours: 1,
			want:  time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "start on a weekend begins monday morning",
			start: time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC), // Saturday
			hours: 2,
			want:  time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clock.Add(tt.start, tt.hours)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBusinessHoursClockSkipsHolidays(t *testing.T) {
	// Monday 2025-01-06 is a holiday; budget resumes Tuesday.
	clock := BusinessHoursClock{Calendar: workCalendar("2025-01-06")}

	start := time.Date(2025, 1, 3, 16, 0, 0, 0, time.UTC) // Friday
	got := clock.Add(start, 2)
	if want := time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBusinessHoursClockMalformedWindowFallsBackToWall(t *testing.T) {
	var calendar Calendar
	calendar.WorkHours.Start = "not-a-time"
	calendar.WorkHours.End = "17:00"
	clock := BusinessHoursClock{Calendar: calendar}

	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	got := clock.Add(start, 3)
	if want := start.Add(3 * time.Hour); !got.Equal(want) {
		t.Errorf("expected wall-clock fallback %v, got %v", want, got)
	}
}

func TestPolicyFor(t *testing.T) {
	calendar := workCalendar()

	tests := []struct {
		name         string
		rule         domain.SLARule
		calendar     *Calendar
		wantBusiness bool
	}{
		{"wall clock rule", domain.SLARule{BusinessHoursOnly: false}, &calendar, false},
		{"business rule with calendar", domain.SLARule{BusinessHoursOnly: true}, &calendar, true},
		{"business rule without calendar falls back to wall", domain.SLARule{BusinessHoursOnly: true}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := PolicyFor(tt.rule, tt.calendar)
			_, isBusiness := policy.(BusinessHoursClock)
			if isBusiness != tt.wantBusiness {
				t.Errorf("expected business=%v, got %T", tt.wantBusiness, policy)
			}
		})
	}
}
