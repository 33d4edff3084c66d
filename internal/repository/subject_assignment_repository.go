package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acadly/timetable-api/internal/models"
)

const subjectAssignmentColumns = "id, subject_id, subject_name, credits, total_hours, primary_faculty_id, co_faculty_ids, is_teaching_load, is_active, created_at"

// SubjectAssignmentRepository reads the subject-to-faculty roster owned by
// subject management. Assignments flagged is_teaching_load = FALSE
// (internships, field research projects) consume faculty time but do not
// count as classroom load, so both queries exclude them.
type SubjectAssignmentRepository struct {
	db *sqlx.DB
}

// NewSubjectAssignmentRepository constructs a subject assignment repository.
func NewSubjectAssignmentRepository(db *sqlx.DB) *SubjectAssignmentRepository {
	return &SubjectAssignmentRepository{db: db}
}

// ListActivePrimaryByFaculty returns active teaching assignments where the
// faculty member is the primary instructor.
func (r *SubjectAssignmentRepository) ListActivePrimaryByFaculty(ctx context.Context, facultyID string) ([]models.SubjectAssignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM subject_assignments
WHERE primary_faculty_id = $1 AND is_active = TRUE AND is_teaching_load = TRUE
ORDER BY subject_name ASC`, subjectAssignmentColumns)
	var assignments []models.SubjectAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, facultyID); err != nil {
		return nil, fmt.Errorf("list primary assignments: %w", err)
	}
	return assignments, nil
}

// ListActiveCoTaughtByFaculty returns active teaching assignments where the
// faculty member appears as a co-instructor.
func (r *SubjectAssignmentRepository) ListActiveCoTaughtByFaculty(ctx context.Context, facultyID string) ([]models.SubjectAssignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM subject_assignments
WHERE $1 = ANY(co_faculty_ids) AND is_active = TRUE AND is_teaching_load = TRUE
ORDER BY subject_name ASC`, subjectAssignmentColumns)
	var assignments []models.SubjectAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, facultyID); err != nil {
		return nil, fmt.Errorf("list co-taught assignments: %w", err)
	}
	return assignments, nil
}
