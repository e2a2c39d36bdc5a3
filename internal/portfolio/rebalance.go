package portfolio

import (
	"fmt"
	"strings"
	"time"
)

// Schedule says how often the portfolio is pulled back to target weights.
type Schedule string

const (
	ScheduleNone    Schedule = "none"
	ScheduleDaily   Schedule = "daily"
	ScheduleWeekly  Schedule = "weekly"
	ScheduleMonthly Schedule = "monthly"
)

func ParseSchedule(s string) (Schedule, error) {
	switch Schedule(strings.ToLower(strings.TrimSpace(s))) {
	case ScheduleNone:
		return ScheduleNone, nil
	case ScheduleDaily:
		return ScheduleDaily, nil
	case ScheduleWeekly:
		return ScheduleWeekly, nil
	case ScheduleMonthly:
		return ScheduleMonthly, nil
	}
	return "", fmt.Errorf("unsupported rebalance schedule: %q", s)
}

func (s Schedule) String() string {
	return string(s)
}

// RebalanceIndexes picks the rows where the portfolio is reallocated. The
// first row is always included (initial allocation). Daily takes the first
// bar of every day, weekly the first bar of every Monday, monthly the first
// bar of each calendar month. Stamps are interpreted in UTC.
func RebalanceIndexes(stamps []time.Time, schedule Schedule) ([]int, error) {
	if len(stamps) == 0 {
		return nil, nil
	}
	idx := []int{0}
	switch schedule {
	case ScheduleNone:
		return idx, nil
	case ScheduleDaily:
		lastDay := dayKey(stamps[0])
		for i := 1; i < len(stamps); i++ {
			if d := dayKey(stamps[i]); d != lastDay {
				idx = append(idx, i)
				lastDay = d
			}
		}
	case ScheduleWeekly:
		lastDay := dayKey(stamps[0])
		for i := 1; i < len(stamps); i++ {
			d := dayKey(stamps[i])
			if d == lastDay {
				continue
			}
			lastDay = d
			if stamps[i].UTC().Weekday() == time.Monday {
				idx = append(idx, i)
			}
		}
	case ScheduleMonthly:
		lastMonth := monthKey(stamps[0])
		for i := 1; i < len(stamps); i++ {
			if m := monthKey(stamps[i]); m != lastMonth {
				idx = append(idx, i)
				lastMonth = m
			}
		}
	default:
		return nil, fmt.Errorf("unsupported rebalance schedule: %q", schedule)
	}
	return idx, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
