package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/acadly/timetable-api/internal/models"
)

const scheduleEntryColumns = "id, batch_id, subject_id, faculty_id, time_slot_id, day_of_week, date, entry_type, title, is_active, created_at, updated_at"

// ScheduleEntryRepository provides persistence for timetable entries.
//
// The schedule_entries table carries partial unique indexes on
// (time_slot_id, day_of_week, date, batch_id) and
// (time_slot_id, day_of_week, date, faculty_id) over active rows, so two
// concurrent creates that both passed the conflict check cannot both land;
// the loser surfaces a unique violation (see IsUniqueViolation).
type ScheduleEntryRepository struct {
	db *sqlx.DB
}

// NewScheduleEntryRepository creates a new schedule entry repository.
func NewScheduleEntryRepository(db *sqlx.DB) *ScheduleEntryRepository {
	return &ScheduleEntryRepository{db: db}
}

// List returns entries with optional filtering and pagination.
func (r *ScheduleEntryRepository) List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error) {
	base := "FROM schedule_entries WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.BatchID != "" {
		conditions = append(conditions, fmt.Sprintf("batch_id = $%d", len(args)+1))
		args = append(args, filter.BatchID)
	}
	if filter.FacultyID != "" {
		conditions = append(conditions, fmt.Sprintf("faculty_id = $%d", len(args)+1))
		args = append(args, filter.FacultyID)
	}
	if filter.TimeSlotID != "" {
		conditions = append(conditions, fmt.Sprintf("time_slot_id = $%d", len(args)+1))
		args = append(args, filter.TimeSlotID)
	}
	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.EntryType != "" {
		conditions = append(conditions, fmt.Sprintf("entry_type = $%d", len(args)+1))
		args = append(args, filter.EntryType)
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY day_of_week ASC, time_slot_id ASC, date ASC NULLS FIRST LIMIT %d OFFSET %d", scheduleEntryColumns, base, size, offset)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedule entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedule entries: %w", err)
	}

	return entries, total, nil
}

// FindByID loads an entry by id.
func (r *ScheduleEntryRepository) FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries WHERE id = $1", scheduleEntryColumns)
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListActiveBySlotAndDay returns every active entry occupying the given
// time slot on the given day of week, dated and recurring alike. This is the
// single query shape the conflict engine reads from.
func (r *ScheduleEntryRepository) ListActiveBySlotAndDay(ctx context.Context, timeSlotID, dayOfWeek string) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries WHERE time_slot_id = $1 AND day_of_week = $2 AND is_active = TRUE", scheduleEntryColumns)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, timeSlotID, dayOfWeek); err != nil {
		return nil, fmt.Errorf("list entries by slot and day: %w", err)
	}
	return entries, nil
}

// ListByBatch returns active entries for a batch ordered by day/slot.
func (r *ScheduleEntryRepository) ListByBatch(ctx context.Context, batchID string) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries WHERE batch_id = $1 AND is_active = TRUE ORDER BY day_of_week ASC, time_slot_id ASC", scheduleEntryColumns)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, batchID); err != nil {
		return nil, fmt.Errorf("list entries by batch: %w", err)
	}
	return entries, nil
}

// ListByFaculty returns active entries taught by a faculty member.
func (r *ScheduleEntryRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries WHERE faculty_id = $1 AND is_active = TRUE ORDER BY day_of_week ASC, time_slot_id ASC", scheduleEntryColumns)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, facultyID); err != nil {
		return nil, fmt.Errorf("list entries by faculty: %w", err)
	}
	return entries, nil
}

// Create stores a new schedule entry record.
func (r *ScheduleEntryRepository) Create(ctx context.Context, entry *models.ScheduleEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	entry.IsActive = true

	const query = `INSERT INTO schedule_entries (id, batch_id, subject_id, faculty_id, time_slot_id, day_of_week, date, entry_type, title, is_active, created_at, updated_at)
VALUES (:id, :batch_id, :subject_id, :faculty_id, :time_slot_id, :day_of_week, :date, :entry_type, :title, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create schedule entry: %w", err)
	}
	return nil
}

// Update modifies a schedule entry record.
func (r *ScheduleEntryRepository) Update(ctx context.Context, entry *models.ScheduleEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedule_entries SET batch_id = :batch_id, subject_id = :subject_id, faculty_id = :faculty_id, time_slot_id = :time_slot_id, day_of_week = :day_of_week, date = :date, entry_type = :entry_type, title = :title, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update schedule entry: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an entry; inactive entries never participate in
// conflict checks.
func (r *ScheduleEntryRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE schedule_entries SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate schedule entry: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether the error is a Postgres unique
// constraint violation, surfaced when a concurrent create won the race.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
