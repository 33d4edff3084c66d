package service

import (
	"time"

	"github.com/acadly/timetable-api/internal/models"
)

// ContactingEntries returns the existing entries whose occurrence pattern
// overlaps the candidate's. Input must already be filtered to the
// candidate's time slot and day of week.
//
// A recurring candidate (no date) contacts every existing entry at that
// slot/day: it would collide with each of those occurrences on some week.
// A dated candidate contacts recurring templates (they occur on every
// matching date, including the candidate's) and dated entries on the exact
// same date; dated entries on other dates never touch it.
func ContactingEntries(candidate models.ScheduleEntry, existing []models.ScheduleEntry) []models.ScheduleEntry {
	if candidate.Recurring() {
		contacting := make([]models.ScheduleEntry, len(existing))
		copy(contacting, existing)
		return contacting
	}

	var contacting []models.ScheduleEntry
	for _, entry := range existing {
		if entry.Recurring() || sameDate(*entry.Date, *candidate.Date) {
			contacting = append(contacting, entry)
		}
	}
	return contacting
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
