package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/acadly/timetable-api/internal/models"
)

// WorkloadSettingsRepository reads department workload configuration.
type WorkloadSettingsRepository struct {
	db *sqlx.DB
}

// NewWorkloadSettingsRepository constructs a settings repository.
func NewWorkloadSettingsRepository(db *sqlx.DB) *WorkloadSettingsRepository {
	return &WorkloadSettingsRepository{db: db}
}

// GetByDepartment loads settings for a department. Returns sql.ErrNoRows
// when the department has no row; the service applies configured defaults.
func (r *WorkloadSettingsRepository) GetByDepartment(ctx context.Context, departmentID string) (*models.DepartmentWorkloadSettings, error) {
	const query = `SELECT department_id, credit_hours_ratio, max_faculty_credits, co_faculty_weight
FROM department_workload_settings WHERE department_id = $1`
	var settings models.DepartmentWorkloadSettings
	if err := r.db.GetContext(ctx, &settings, query, departmentID); err != nil {
		return nil, err
	}
	return &settings, nil
}
