package service

import (
	"github.com/acadly/timetable-api/internal/models"
)

// ClassifyConflicts partitions contacting entries into conflict categories.
//
// An exact duplicate — same batch, subject and faculty — short-circuits the
// classification: re-submitting an identical creation request is a harmless
// no-op signal and must not cascade into unrelated conflict noise.
// Otherwise entries sharing the batch become a batch double booking and,
// when the candidate names a faculty member, entries sharing that faculty
// become a faculty conflict. Offender lists are never deduplicated or
// truncated here; display limits belong to higher layers.
func ClassifyConflicts(candidate models.ScheduleEntry, contacting []models.ScheduleEntry) []models.Conflict {
	if len(contacting) == 0 {
		return nil
	}

	var duplicates []models.ScheduleEntry
	for _, entry := range contacting {
		if entry.BatchID == candidate.BatchID &&
			refsEqual(entry.SubjectID, candidate.SubjectID) &&
			refsEqual(entry.FacultyID, candidate.FacultyID) {
			duplicates = append(duplicates, entry)
		}
	}
	if len(duplicates) > 0 {
		return []models.Conflict{newConflict(
			models.ConflictExactDuplicate,
			"an identical schedule entry already exists for this batch, subject and faculty",
			duplicates,
		)}
	}

	var conflicts []models.Conflict

	var batchClashes []models.ScheduleEntry
	for _, entry := range contacting {
		if entry.BatchID != candidate.BatchID {
			continue
		}
		if refsEqual(entry.SubjectID, candidate.SubjectID) && refsEqual(entry.FacultyID, candidate.FacultyID) {
			continue
		}
		batchClashes = append(batchClashes, entry)
	}
	if len(batchClashes) > 0 {
		conflicts = append(conflicts, newConflict(
			models.ConflictBatchDoubleBooking,
			"batch is already scheduled for a different class in this time slot",
			batchClashes,
		))
	}

	if candidate.FacultyID != nil {
		var facultyClashes []models.ScheduleEntry
		for _, entry := range contacting {
			if entry.FacultyID == nil || *entry.FacultyID != *candidate.FacultyID {
				continue
			}
			if entry.BatchID == candidate.BatchID && refsEqual(entry.SubjectID, candidate.SubjectID) {
				continue
			}
			facultyClashes = append(facultyClashes, entry)
		}
		if len(facultyClashes) > 0 {
			conflicts = append(conflicts, newConflict(
				models.ConflictFaculty,
				"faculty member is already teaching a different class in this time slot",
				facultyClashes,
			))
		}
	}

	return conflicts
}

func newConflict(conflictType models.ConflictType, message string, entries []models.ScheduleEntry) models.Conflict {
	return models.Conflict{
		Type:     conflictType,
		Severity: conflictType.Severity(),
		Message:  message,
		Entries:  entries,
	}
}

func refsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
