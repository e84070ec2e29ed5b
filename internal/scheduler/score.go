package scheduler

import (
	"cmp"
	"slices"

	"github.com/rhyrak/go-pick/pkg/model"
)

// BackToBackTolerance is 1.5 minutes in hours. Same-day meetings separated
// by less than this count as back-to-back.
const BackToBackTolerance = 1.5 / 60.0

// ScoreSchedule sums one point per violation of every enabled preference.
// Lower is better.
func ScoreSchedule(schedule model.Schedule, prefs model.Preferences) int {
	score := 0
	if prefs.NoBefore {
		score += CountMorningClasses(schedule, prefs.BeforeCutoff)
	}
	if prefs.NoAfter {
		score += CountEveningClasses(schedule, prefs.AfterCutoff)
	}
	if prefs.AvoidFriday {
		score += CountFridayClasses(schedule)
	}
	if prefs.AvoidBackToBack {
		score += CountBackToBack(schedule)
	}
	if prefs.MinimizeDays {
		score += CountDaysUsed(schedule)
	}
	return score
}

// CountMorningClasses counts meetings starting strictly before cutoff.
func CountMorningClasses(schedule model.Schedule, cutoff float64) int {
	n := 0
	for _, t := range schedule.Timeslots() {
		if t.Start < cutoff {
			n++
		}
	}
	return n
}

// CountEveningClasses counts meetings starting strictly after cutoff.
func CountEveningClasses(schedule model.Schedule, cutoff float64) int {
	n := 0
	for _, t := range schedule.Timeslots() {
		if t.Start > cutoff {
			n++
		}
	}
	return n
}

func CountFridayClasses(schedule model.Schedule) int {
	n := 0
	for _, t := range schedule.Timeslots() {
		if t.Day == model.Friday {
			n++
		}
	}
	return n
}

// CountBackToBack sorts each day's meetings by start (then end) and counts
// neighbours whose gap is below BackToBackTolerance.
func CountBackToBack(schedule model.Schedule) int {
	daily := make(map[model.Day][]model.Timeslot)
	for _, t := range schedule.Timeslots() {
		daily[t.Day] = append(daily[t.Day], t)
	}

	n := 0
	for _, slots := range daily {
		if len(slots) < 2 {
			continue
		}
		slices.SortFunc(slots, func(a, b model.Timeslot) int {
			if a.Start != b.Start {
				return cmp.Compare(a.Start, b.Start)
			}
			return cmp.Compare(a.End, b.End)
		})
		for i := 1; i < len(slots); i++ {
			if slots[i].Start-slots[i-1].End < BackToBackTolerance {
				n++
			}
		}
	}
	return n
}

// CountDaysUsed counts distinct weekdays with at least one meeting.
func CountDaysUsed(schedule model.Schedule) int {
	days := make(map[model.Day]bool)
	for _, t := range schedule.Timeslots() {
		days[t.Day] = true
	}
	return len(days)
}
