package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acadly/timetable-api/internal/models"
)

// ExamPeriodRepository reads exam blackout windows.
type ExamPeriodRepository struct {
	db *sqlx.DB
}

// NewExamPeriodRepository constructs an exam period repository.
func NewExamPeriodRepository(db *sqlx.DB) *ExamPeriodRepository {
	return &ExamPeriodRepository{db: db}
}

// ListBlockingByDateAndDepartment returns exam periods whose inclusive
// range contains the date, that block regular classes, and that are scoped
// to the department or to the whole university.
func (r *ExamPeriodRepository) ListBlockingByDateAndDepartment(ctx context.Context, date time.Time, departmentID string) ([]models.ExamPeriod, error) {
	const query = `SELECT id, name, start_date, end_date, block_regular_classes, department_id FROM exam_periods
WHERE start_date <= $1 AND end_date >= $1 AND block_regular_classes = TRUE
AND (department_id IS NULL OR department_id = $2)
ORDER BY start_date ASC`
	var periods []models.ExamPeriod
	if err := r.db.SelectContext(ctx, &periods, query, date, departmentID); err != nil {
		return nil, fmt.Errorf("list blocking exam periods: %w", err)
	}
	return periods, nil
}
