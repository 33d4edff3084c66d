package models

import "time"

// DayOfWeek symbols stored on schedule entries.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

// DayOrder maps day symbols to their position for validation and sorting.
var DayOrder = map[string]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
	Sunday:    7,
}

// DayOfWeekFromTime returns the day symbol for a calendar date.
func DayOfWeekFromTime(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// EntryType classifies what a schedule entry represents.
type EntryType string

const (
	EntryTypeRegular EntryType = "REGULAR"
	EntryTypeMakeup  EntryType = "MAKEUP"
	EntryTypeExtra   EntryType = "EXTRA"
	EntryTypeExam    EntryType = "EXAM"
	EntryTypeEvent   EntryType = "EVENT"
)

// Valid reports whether the entry type is one of the known symbols.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeRegular, EntryTypeMakeup, EntryTypeExtra, EntryTypeExam, EntryTypeEvent:
		return true
	}
	return false
}

// ClassIntent reports whether the entry represents classroom teaching, as
// opposed to an exam sitting or a free-form event. Holiday warnings only
// apply to class-intent entries.
func (t EntryType) ClassIntent() bool {
	switch t {
	case EntryTypeRegular, EntryTypeMakeup, EntryTypeExtra:
		return true
	}
	return false
}

// ScheduleEntry is a timetable occurrence for a batch. An entry with no
// date recurs every week on its day of week; an entry with a date exists on
// that single date only (a one-off class or an override for that week).
type ScheduleEntry struct {
	ID         string     `db:"id" json:"id"`
	BatchID    string     `db:"batch_id" json:"batch_id"`
	SubjectID  *string    `db:"subject_id" json:"subject_id,omitempty"`
	FacultyID  *string    `db:"faculty_id" json:"faculty_id,omitempty"`
	TimeSlotID string     `db:"time_slot_id" json:"time_slot_id"`
	DayOfWeek  string     `db:"day_of_week" json:"day_of_week"`
	Date       *time.Time `db:"date" json:"date,omitempty"`
	EntryType  EntryType  `db:"entry_type" json:"entry_type"`
	Title      *string    `db:"title" json:"title,omitempty"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Recurring reports whether the entry is a weekly template (no date).
func (e ScheduleEntry) Recurring() bool {
	return e.Date == nil
}

// ScheduleEntryFilter describes query params for listing entries.
type ScheduleEntryFilter struct {
	BatchID    string
	FacultyID  string
	TimeSlotID string
	DayOfWeek  string
	EntryType  string
	ActiveOnly bool
	Page       int
	PageSize   int
}
