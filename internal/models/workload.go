package models

import (
	"time"

	"github.com/lib/pq"
)

// SubjectAssignment links a subject to its teaching faculty. Rows are owned
// by subject management; this service only reads them.
type SubjectAssignment struct {
	ID               string         `db:"id" json:"id"`
	SubjectID        string         `db:"subject_id" json:"subject_id"`
	SubjectName      string         `db:"subject_name" json:"subject_name"`
	Credits          int            `db:"credits" json:"credits"`
	TotalHours       int            `db:"total_hours" json:"total_hours"`
	PrimaryFacultyID string         `db:"primary_faculty_id" json:"primary_faculty_id"`
	CoFacultyIDs     pq.StringArray `db:"co_faculty_ids" json:"co_faculty_ids"`
	IsTeachingLoad   bool           `db:"is_teaching_load" json:"is_teaching_load"`
	IsActive         bool           `db:"is_active" json:"is_active"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// DepartmentWorkloadSettings configures how a department converts credits
// into hours and caps faculty load.
type DepartmentWorkloadSettings struct {
	DepartmentID      string  `db:"department_id" json:"department_id"`
	CreditHoursRatio  float64 `db:"credit_hours_ratio" json:"credit_hours_ratio"`
	MaxFacultyCredits float64 `db:"max_faculty_credits" json:"max_faculty_credits"`
	CoFacultyWeight   float64 `db:"co_faculty_weight" json:"co_faculty_weight"`
}

// WorkloadLevel classifies an aggregated teaching load against the caps.
type WorkloadLevel string

const (
	WorkloadLow      WorkloadLevel = "LOW"
	WorkloadNormal   WorkloadLevel = "NORMAL"
	WorkloadHigh     WorkloadLevel = "HIGH"
	WorkloadOverload WorkloadLevel = "OVERLOAD"
)

// FacultyWorkload is the computed load picture for one faculty member.
type FacultyWorkload struct {
	FacultyID        string        `json:"faculty_id"`
	DepartmentID     string        `json:"department_id"`
	TotalCredits     float64       `json:"total_credits"`
	TotalHours       float64       `json:"total_hours"`
	MaxCredits       float64       `json:"max_credits"`
	MaxHours         float64       `json:"max_hours"`
	CreditPercentage float64       `json:"credit_percentage"`
	HourPercentage   float64       `json:"hour_percentage"`
	Level            WorkloadLevel `json:"workload_level"`
}

// AdmissionDecision answers whether a faculty member can absorb additional
// credits on top of their current load.
type AdmissionDecision struct {
	Allowed                   bool             `json:"allowed"`
	Reason                    string           `json:"reason,omitempty"`
	ProjectedCreditPercentage float64          `json:"projected_credit_percentage"`
	CurrentWorkload           *FacultyWorkload `json:"current_workload,omitempty"`
}
