package portfolio

import (
	"testing"
	"time"
)

func dailyStamps(t *testing.T, start string, days int) []time.Time {
	t.Helper()
	first, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatalf("parse %s: %v", start, err)
	}
	out := make([]time.Time, days)
	for i := range out {
		out[i] = first.AddDate(0, 0, i).UTC()
	}
	return out
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule(" Weekly ")
	if err != nil || s != ScheduleWeekly {
		t.Fatalf("got %v,%v want weekly,nil", s, err)
	}
	if _, err := ParseSchedule("hourly"); err == nil {
		t.Fatalf("expected error for unsupported schedule")
	}
}

func TestRebalanceIndexes_None(t *testing.T) {
	stamps := dailyStamps(t, "2024-01-01", 5)
	idx, err := RebalanceIndexes(stamps, ScheduleNone)
	if err != nil {
		t.Fatalf("indexes: %v", err)
	}
	if len(idx) != 1 || idx[0] != 0 {
		t.Fatalf("idx=%v want=[0]", idx)
	}
}

func TestRebalanceIndexes_DailyOnDailyBars(t *testing.T) {
	stamps := dailyStamps(t, "2024-01-01", 4)
	idx, err := RebalanceIndexes(stamps, ScheduleDaily)
	if err != nil {
		t.Fatalf("indexes: %v", err)
	}
	want := []int{0, 1, 2, 3}
	if len(idx) != len(want) {
		t.Fatalf("idx=%v want=%v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("idx=%v want=%v", idx, want)
		}
	}
}

func TestRebalanceIndexes_WeeklyPicksMondays(t *testing.T) {
	// 2024-01-01 is a Monday. Ten calendar days cover two more Mondays
	// only one of which is inside the range.
	stamps := dailyStamps(t, "2024-01-01", 10)
	idx, err := RebalanceIndexes(stamps, ScheduleWeekly)
	if err != nil {
		t.Fatalf("indexes: %v", err)
	}
	// Row 0 plus 2024-01-08.
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 7 {
		t.Fatalf("idx=%v want=[0 7]", idx)
	}
}

func TestRebalanceIndexes_WeeklyFirstBarOfMonday(t *testing.T) {
	// Two intraday bars per day across a weekend.
	base := time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC) // Friday
	stamps := []time.Time{
		base,
		base.Add(time.Hour),
		base.AddDate(0, 0, 3),                // Monday 14:00
		base.AddDate(0, 0, 3).Add(time.Hour), // Monday 15:00
		base.AddDate(0, 0, 4),
	}
	idx, err := RebalanceIndexes(stamps, ScheduleWeekly)
	if err != nil {
		t.Fatalf("indexes: %v", err)
	}
	if len(idx) != 2 || idx[1] != 2 {
		t.Fatalf("idx=%v want=[0 2]", idx)
	}
}

func TestRebalanceIndexes_Monthly(t *testing.T) {
	stamps := dailyStamps(t, "2024-01-30", 4) // Jan 30, 31, Feb 1, 2
	idx, err := RebalanceIndexes(stamps, ScheduleMonthly)
	if err != nil {
		t.Fatalf("indexes: %v", err)
	}
	if len(idx) != 2 || idx[1] != 2 {
		t.Fatalf("idx=%v want=[0 2]", idx)
	}
}

func TestRebalanceIndexes_Empty(t *testing.T) {
	idx, err := RebalanceIndexes(nil, ScheduleDaily)
	if err != nil || idx != nil {
		t.Fatalf("got %v,%v want nil,nil", idx, err)
	}
}
