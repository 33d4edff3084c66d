package models

import "time"

// Holiday marks a non-teaching date. A nil DepartmentID means the holiday
// is university-wide.
type Holiday struct {
	ID           string    `db:"id" json:"id"`
	Date         time.Time `db:"date" json:"date"`
	Name         string    `db:"name" json:"name"`
	DepartmentID *string   `db:"department_id" json:"department_id,omitempty"`
}

// ExamPeriod is an inclusive date range during which regular classes may be
// blocked for the scoped department (nil = every department).
type ExamPeriod struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	StartDate           time.Time `db:"start_date" json:"start_date"`
	EndDate             time.Time `db:"end_date" json:"end_date"`
	BlockRegularClasses bool      `db:"block_regular_classes" json:"block_regular_classes"`
	DepartmentID        *string   `db:"department_id" json:"department_id,omitempty"`
}

// Batch is a student cohort; entries reference it and its department scopes
// holiday and exam-period lookups.
type Batch struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
