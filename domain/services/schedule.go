package services

import (
	"fmt"
	"sort"
	"time"

	"housie/domain/entities"
)

const clockLayout = "15:04"

// FullSchedule expands the recurring slot configuration into the day's
// schedule and merges in the operator's manual games. A manual game on the
// same minute wins over the auto-generated slot. The result is sorted by
// time of day.
func FullSchedule(auto entities.AutoScheduleConfig, manual []*entities.ScheduledGame) []*entities.ScheduledGame {
	schedule := make([]*entities.ScheduledGame, 0, len(manual))
	taken := make(map[string]bool, len(manual))
	for _, g := range manual {
		schedule = append(schedule, g)
		taken[g.Time] = true
	}

	if auto.Enabled {
		first, errFirst := time.Parse(clockLayout, auto.FirstGameTime)
		last, errLast := time.Parse(clockLayout, auto.LastGameTime)
		if errFirst == nil && errLast == nil && auto.IntervalMinutes > 0 {
			for t := first; !t.After(last); t = t.Add(time.Duration(auto.IntervalMinutes) * time.Minute) {
				slot := t.Format(clockLayout)
				if taken[slot] {
					continue
				}
				schedule = append(schedule, &entities.ScheduledGame{
					ID:    fmt.Sprintf("auto-%s", slot),
					Time:  slot,
					Price: auto.SeriesPrice,
				})
				taken[slot] = true
			}
		}
	}

	sort.Slice(schedule, func(i, j int) bool { return schedule[i].Time < schedule[j].Time })
	return schedule
}

// NextGame picks the first slot at or after the current time of day,
// wrapping to the day's first slot after the last game has passed. Returns
// nil for an empty schedule.
func NextGame(schedule []*entities.ScheduledGame, now time.Time) *entities.ScheduledGame {
	if len(schedule) == 0 {
		return nil
	}
	current := now.Format(clockLayout)
	for _, g := range schedule {
		if g.Time >= current {
			return g
		}
	}
	return schedule[0]
}

// MinutesUntil returns the whole minutes from now until the "HH:mm" target
// today. Negative when the target has passed; false when the time string
// does not parse.
func MinutesUntil(target string, now time.Time) (int, bool) {
	t, err := time.Parse(clockLayout, target)
	if err != nil {
		return 0, false
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return int(at.Sub(now) / time.Minute), true
}
