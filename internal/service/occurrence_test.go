package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadly/timetable-api/internal/models"
)

func dateOf(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	require.NoError(t, err)
	return &parsed
}

func TestContactingEntriesRecurringCandidateTouchesEverything(t *testing.T) {
	existing := []models.ScheduleEntry{
		{ID: "recurring-1"},
		{ID: "dated-1", Date: dateOf(t, "2026-03-02")},
		{ID: "dated-2", Date: dateOf(t, "2026-03-09")},
	}

	candidate := models.ScheduleEntry{BatchID: "batch-1"}
	contacting := ContactingEntries(candidate, existing)
	require.Len(t, contacting, 3)
}

func TestContactingEntriesDatedCandidate(t *testing.T) {
	existing := []models.ScheduleEntry{
		{ID: "recurring-1"},
		{ID: "same-date", Date: dateOf(t, "2026-03-02")},
		{ID: "other-date", Date: dateOf(t, "2026-03-09")},
	}

	candidate := models.ScheduleEntry{BatchID: "batch-1", Date: dateOf(t, "2026-03-02")}
	contacting := ContactingEntries(candidate, existing)
	require.Len(t, contacting, 2)
	assert.Equal(t, "recurring-1", contacting[0].ID)
	assert.Equal(t, "same-date", contacting[1].ID)
}

func TestContactingEntriesDatedCandidateNoMatches(t *testing.T) {
	existing := []models.ScheduleEntry{
		{ID: "other-date", Date: dateOf(t, "2026-03-09")},
	}

	candidate := models.ScheduleEntry{BatchID: "batch-1", Date: dateOf(t, "2026-03-02")}
	contacting := ContactingEntries(candidate, existing)
	assert.Empty(t, contacting)
}

func TestContactingEntriesIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)
	existing := []models.ScheduleEntry{{ID: "dated-noon", Date: &noon}}

	candidate := models.ScheduleEntry{Date: dateOf(t, "2026-03-02")}
	contacting := ContactingEntries(candidate, existing)
	require.Len(t, contacting, 1)
}
