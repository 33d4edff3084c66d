package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/internal/repository"
	appErrors "github.com/acadly/timetable-api/pkg/errors"
)

type scheduleEntryRepository interface {
	List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error)
	ListActiveBySlotAndDay(ctx context.Context, timeSlotID, dayOfWeek string) ([]models.ScheduleEntry, error)
	ListByBatch(ctx context.Context, batchID string) ([]models.ScheduleEntry, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error)
	Create(ctx context.Context, entry *models.ScheduleEntry) error
	Update(ctx context.Context, entry *models.ScheduleEntry) error
	Deactivate(ctx context.Context, id string) error
}

type batchReader interface {
	FindByID(ctx context.Context, id string) (*models.Batch, error)
}

type holidayReader interface {
	ListByDateAndDepartment(ctx context.Context, date time.Time, departmentID string) ([]models.Holiday, error)
}

type examPeriodReader interface {
	ListBlockingByDateAndDepartment(ctx context.Context, date time.Time, departmentID string) ([]models.ExamPeriod, error)
}

// ScheduleEntryPayload describes a candidate entry as submitted by callers.
type ScheduleEntryPayload struct {
	BatchID    string  `json:"batch_id" validate:"required"`
	SubjectID  *string `json:"subject_id,omitempty"`
	FacultyID  *string `json:"faculty_id,omitempty"`
	TimeSlotID string  `json:"time_slot_id" validate:"required"`
	DayOfWeek  string  `json:"day_of_week" validate:"required"`
	Date       *string `json:"date,omitempty"`
	EntryType  string  `json:"entry_type" validate:"required"`
	Title      *string `json:"title,omitempty"`
}

// CheckConflictsRequest asks the engine to evaluate a candidate without
// persisting anything. ExcludeEntryID is set when editing an existing entry
// so it does not conflict with itself.
type CheckConflictsRequest struct {
	ScheduleEntryPayload
	ExcludeEntryID string `json:"exclude_entry_id,omitempty"`
}

// CreateScheduleEntryRequest creates an entry. Override lets an authorized
// caller persist despite informational findings (holidays, exam periods);
// blocking conflicts can never be overridden.
type CreateScheduleEntryRequest struct {
	ScheduleEntryPayload
	Override bool `json:"override"`
}

// UpdateScheduleEntryRequest edits an existing entry.
type UpdateScheduleEntryRequest struct {
	ScheduleEntryPayload
	Override bool `json:"override"`
}

// ConflictService is the scheduling conflict engine plus the entry
// lifecycle built on top of it. It is stateless; every call reads the
// stores just in time, so concurrent invocations share nothing.
type ConflictService struct {
	entries   scheduleEntryRepository
	batches   batchReader
	holidays  holidayReader
	examPds   examPeriodReader
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConflictService instantiates ConflictService.
func NewConflictService(
	entries scheduleEntryRepository,
	batches batchReader,
	holidays holidayReader,
	examPds examPeriodReader,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *ConflictService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{
		entries:   entries,
		batches:   batches,
		holidays:  holidays,
		examPds:   examPds,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// CheckConflicts evaluates a candidate and returns the full conflict
// report. Conflicts are data, not errors: an error return means a
// collaborator read failed and must never be confused with a clean report.
func (s *ConflictService) CheckConflicts(ctx context.Context, req CheckConflictsRequest) (*models.ConflictReport, error) {
	candidate, err := s.buildCandidate(req.ScheduleEntryPayload)
	if err != nil {
		return nil, err
	}
	return s.checkConflicts(ctx, *candidate, req.ExcludeEntryID)
}

// Create persists a new entry after running the engine. Blocking conflicts
// always reject; informational-only findings reject too unless Override is
// set. A uniqueness violation from the store (a concurrent create won the
// read-then-write race) surfaces as a retryable conflict.
func (s *ConflictService) Create(ctx context.Context, req CreateScheduleEntryRequest) (*models.ScheduleEntry, error) {
	candidate, err := s.buildCandidate(req.ScheduleEntryPayload)
	if err != nil {
		return nil, err
	}

	report, err := s.checkConflicts(ctx, *candidate, "")
	if err != nil {
		return nil, err
	}
	if err := s.gateReport(*report, req.Override); err != nil {
		return nil, err
	}

	if err := s.entries.Create(ctx, candidate); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
				"a conflicting entry was created concurrently; re-check and retry")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule entry")
	}

	s.logger.Info("schedule entry created",
		zap.String("entry_id", candidate.ID),
		zap.String("batch_id", candidate.BatchID),
		zap.String("time_slot_id", candidate.TimeSlotID),
		zap.String("day_of_week", candidate.DayOfWeek),
	)
	return candidate, nil
}

// Update modifies an existing entry, excluding it from its own conflict
// evaluation.
func (s *ConflictService) Update(ctx context.Context, id string, req UpdateScheduleEntryRequest) (*models.ScheduleEntry, error) {
	existing, err := s.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}

	candidate, err := s.buildCandidate(req.ScheduleEntryPayload)
	if err != nil {
		return nil, err
	}
	candidate.ID = existing.ID
	candidate.CreatedAt = existing.CreatedAt
	candidate.IsActive = existing.IsActive

	report, err := s.checkConflicts(ctx, *candidate, existing.ID)
	if err != nil {
		return nil, err
	}
	if err := s.gateReport(*report, req.Override); err != nil {
		return nil, err
	}

	if err := s.entries.Update(ctx, candidate); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
				"a conflicting entry was created concurrently; re-check and retry")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule entry")
	}
	return candidate, nil
}

// Deactivate soft-deletes an entry; history is never hard-deleted.
func (s *ConflictService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.entries.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}
	if err := s.entries.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate schedule entry")
	}
	return nil
}

// List returns entries with pagination metadata.
func (s *ConflictService) List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, *models.Pagination, error) {
	entries, total, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule entries")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return entries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListByBatch returns the active timetable for a batch.
func (s *ConflictService) ListByBatch(ctx context.Context, batchID string) ([]models.ScheduleEntry, error) {
	entries, err := s.entries.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list batch schedule")
	}
	return entries, nil
}

// ListByFaculty returns the active timetable for a faculty member.
func (s *ConflictService) ListByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error) {
	entries, err := s.entries.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty schedule")
	}
	return entries, nil
}

func (s *ConflictService) checkConflicts(ctx context.Context, candidate models.ScheduleEntry, excludeEntryID string) (*models.ConflictReport, error) {
	start := time.Now()
	existing, err := s.entries.ListActiveBySlotAndDay(ctx, candidate.TimeSlotID, candidate.DayOfWeek)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load entries for conflict check")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("schedule_entries_by_slot", time.Since(start))
	}

	if excludeEntryID != "" {
		filtered := existing[:0]
		for _, entry := range existing {
			if entry.ID != excludeEntryID {
				filtered = append(filtered, entry)
			}
		}
		existing = filtered
	}

	contacting := ContactingEntries(candidate, existing)
	conflicts := ClassifyConflicts(candidate, contacting)

	if candidate.Date != nil {
		calendarConflicts, err := s.checkCalendar(ctx, candidate)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, calendarConflicts...)
	}

	if s.metrics != nil {
		for _, c := range conflicts {
			s.metrics.CountConflict(string(c.Type))
		}
	}

	// A clean report serialises as an empty array, never null.
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}

	return &models.ConflictReport{Conflicts: conflicts}, nil
}

// checkCalendar layers holiday and exam-period findings onto a dated
// candidate. Both are informational: callers may warn and override.
func (s *ConflictService) checkCalendar(ctx context.Context, candidate models.ScheduleEntry) ([]models.Conflict, error) {
	batch, err := s.batches.FindByID(ctx, candidate.BatchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	var conflicts []models.Conflict
	date := *candidate.Date

	if candidate.EntryType.ClassIntent() {
		holidays, err := s.holidays.ListByDateAndDepartment(ctx, date, batch.DepartmentID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
		}
		if len(holidays) > 0 {
			conflicts = append(conflicts, models.Conflict{
				Type:     models.ConflictHolidayScheduling,
				Severity: models.ConflictHolidayScheduling.Severity(),
				Message:  fmt.Sprintf("date falls on %s; scheduling a class is allowed but discouraged", holidayNames(holidays)),
				Holidays: holidays,
			})
		}
	}

	if candidate.EntryType == models.EntryTypeRegular {
		periods, err := s.examPds.ListBlockingByDateAndDepartment(ctx, date, batch.DepartmentID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam periods")
		}
		if len(periods) > 0 {
			conflicts = append(conflicts, models.Conflict{
				Type:        models.ConflictExamPeriod,
				Severity:    models.ConflictExamPeriod.Severity(),
				Message:     "regular classes are blocked during an exam period; use a MAKEUP or EXTRA entry to reschedule",
				ExamPeriods: periods,
			})
		}
	}

	return conflicts, nil
}

func (s *ConflictService) gateReport(report models.ConflictReport, override bool) error {
	if report.Empty() {
		return nil
	}
	if report.HasBlocking() {
		detail := &models.ConflictReportError{Message: "schedule conflicts detected", Report: report}
		return appErrors.Wrap(detail, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "schedule conflicts detected")
	}
	if !override {
		detail := &models.ConflictReportError{Message: "scheduling warnings require override", Report: report}
		return appErrors.Wrap(detail, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "scheduling warnings require override")
	}
	return nil
}

// buildCandidate validates the payload and normalises it into a candidate
// entry. Structural problems are rejected here, before the matcher runs.
func (s *ConflictService) buildCandidate(payload ScheduleEntryPayload) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule entry payload")
	}

	day := strings.ToUpper(payload.DayOfWeek)
	if _, ok := models.DayOrder[day]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day of week %q", payload.DayOfWeek))
	}

	entryType := models.EntryType(strings.ToUpper(payload.EntryType))
	if !entryType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown entry type %q", payload.EntryType))
	}

	entry := &models.ScheduleEntry{
		BatchID:    payload.BatchID,
		SubjectID:  payload.SubjectID,
		FacultyID:  payload.FacultyID,
		TimeSlotID: payload.TimeSlotID,
		DayOfWeek:  day,
		EntryType:  entryType,
		Title:      payload.Title,
	}

	if payload.Date != nil && *payload.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *payload.Date, time.UTC)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted YYYY-MM-DD")
		}
		if models.DayOfWeekFromTime(parsed) != day {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("date %s is a %s, not a %s", *payload.Date, models.DayOfWeekFromTime(parsed), day))
		}
		entry.Date = &parsed
	}

	return entry, nil
}

func holidayNames(holidays []models.Holiday) string {
	names := make([]string, len(holidays))
	for i, h := range holidays {
		names[i] = h.Name
	}
	return strings.Join(names, ", ")
}
