package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acadly/timetable-api/internal/models"
)

// HolidayRepository reads the administrator-managed holiday calendar.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListByDateAndDepartment returns holidays on the exact date that apply to
// the department, including university-wide rows (department_id IS NULL).
func (r *HolidayRepository) ListByDateAndDepartment(ctx context.Context, date time.Time, departmentID string) ([]models.Holiday, error) {
	const query = `SELECT id, date, name, department_id FROM holidays
WHERE date = $1 AND (department_id IS NULL OR department_id = $2)
ORDER BY name ASC`
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, date, departmentID); err != nil {
		return nil, fmt.Errorf("list holidays by date: %w", err)
	}
	return holidays, nil
}
