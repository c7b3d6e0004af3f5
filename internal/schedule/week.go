// Package schedule computes the working-day window targeted by a run.
package schedule

import (
	"sort"
	"time"
)

// WorkWeek returns the Monday through Friday of the calendar week containing
// now, midnight-normalized in now's location, in ascending order. Weekend
// days are filtered defensively even though the construction cannot produce
// them under a sane clock.
func WorkWeek(now time.Time) []time.Time {
	// Go's weekday: Sunday=0, Monday=1, ..., Saturday=6. Sunday belongs to
	// the week that started six days earlier.
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}

	monday := now.AddDate(0, 0, -offset)
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())

	days := make([]time.Time, 0, 5)
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		if IsWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Years returns the distinct years spanned by the given dates, ascending.
// A week crossing New Year spans two years.
func Years(dates []time.Time) []int {
	seen := make(map[int]struct{}, 2)
	var years []int
	for _, d := range dates {
		y := d.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
