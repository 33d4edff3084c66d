package models

// ConflictType tags one category of scheduling conflict.
type ConflictType string

const (
	ConflictExactDuplicate     ConflictType = "EXACT_DUPLICATE"
	ConflictBatchDoubleBooking ConflictType = "BATCH_DOUBLE_BOOKING"
	ConflictFaculty            ConflictType = "FACULTY_CONFLICT"
	ConflictHolidayScheduling  ConflictType = "HOLIDAY_SCHEDULING"
	ConflictExamPeriod         ConflictType = "EXAM_PERIOD_CONFLICT"
)

// ConflictSeverity splits conflicts that must block persistence from ones
// callers may choose to override.
type ConflictSeverity string

const (
	SeverityBlocking      ConflictSeverity = "BLOCKING"
	SeverityInformational ConflictSeverity = "INFORMATIONAL"
)

// Severity returns the default severity for a conflict type. Duplicate,
// batch and faculty collisions block; holiday and exam-period findings are
// warnings the caller may override.
func (t ConflictType) Severity() ConflictSeverity {
	switch t {
	case ConflictHolidayScheduling, ConflictExamPeriod:
		return SeverityInformational
	}
	return SeverityBlocking
}

// Conflict groups every offender of one conflict type against a candidate.
type Conflict struct {
	Type        ConflictType     `json:"type"`
	Severity    ConflictSeverity `json:"severity"`
	Message     string           `json:"message"`
	Entries     []ScheduleEntry  `json:"entries"`
	Holidays    []Holiday        `json:"holidays,omitempty"`
	ExamPeriods []ExamPeriod     `json:"exam_periods,omitempty"`
}

// ConflictReport is the engine's full answer for one candidate. An empty
// report means the candidate is clear to persist.
type ConflictReport struct {
	Conflicts []Conflict `json:"conflicts"`
}

// Empty reports whether no conflicts were found.
func (r ConflictReport) Empty() bool {
	return len(r.Conflicts) == 0
}

// HasBlocking reports whether any conflict must prevent persistence.
func (r ConflictReport) HasBlocking() bool {
	for _, c := range r.Conflicts {
		if c.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}

// ConflictReportError is returned when a write is rejected because the
// engine found conflicts; it carries the full report for the caller.
type ConflictReportError struct {
	Message string         `json:"message"`
	Report  ConflictReport `json:"report"`
}

// Error implements the error interface.
func (e *ConflictReportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
