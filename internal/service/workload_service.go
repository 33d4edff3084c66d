package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/pkg/config"
	appErrors "github.com/acadly/timetable-api/pkg/errors"
)

type subjectAssignmentReader interface {
	ListActivePrimaryByFaculty(ctx context.Context, facultyID string) ([]models.SubjectAssignment, error)
	ListActiveCoTaughtByFaculty(ctx context.Context, facultyID string) ([]models.SubjectAssignment, error)
}

type workloadSettingsReader interface {
	GetByDepartment(ctx context.Context, departmentID string) (*models.DepartmentWorkloadSettings, error)
}

// Workload level thresholds; closed boundaries are policy constants, not
// derived from the ratios.
const (
	workloadLowMax    = 50.0
	workloadNormalMax = 83.0
	workloadHighMax   = 100.0

	// Admission gates on the projected credit percentage.
	admissionOverloadPct = 100.0
	admissionHighRiskPct = 90.0
)

// CheckAdmissionRequest asks whether a faculty member can take more credits.
type CheckAdmissionRequest struct {
	AdditionalCredits float64 `json:"additional_credits" validate:"gte=0"`
	DepartmentID      string  `json:"department_id" validate:"required"`
}

// WorkloadService aggregates a faculty member's teaching load and gates
// additional assignments against department caps.
type WorkloadService struct {
	assignments subjectAssignmentReader
	settings    workloadSettingsReader
	cache       *CacheService
	defaults    config.WorkloadConfig
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewWorkloadService instantiates WorkloadService.
func NewWorkloadService(
	assignments subjectAssignmentReader,
	settings workloadSettingsReader,
	cache *CacheService,
	defaults config.WorkloadConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *WorkloadService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadService{
		assignments: assignments,
		settings:    settings,
		cache:       cache,
		defaults:    defaults,
		validator:   validate,
		logger:      logger,
	}
}

// ComputeWorkload aggregates the faculty member's active teaching
// assignments into credit/hour totals and classifies the result. Primary
// assignments count at full weight; co-taught assignments contribute the
// department's co-faculty weight of their credits and hours.
func (s *WorkloadService) ComputeWorkload(ctx context.Context, facultyID, departmentID string) (*models.FacultyWorkload, error) {
	cacheKey := fmt.Sprintf("workload:%s:%s", facultyID, departmentID)
	if s.cache.Enabled() {
		var cached models.FacultyWorkload
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	settings, err := s.loadSettings(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	primary, err := s.assignments.ListActivePrimaryByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load primary assignments")
	}
	coTaught, err := s.assignments.ListActiveCoTaughtByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load co-taught assignments")
	}

	var totalCredits, totalHours float64
	for _, a := range primary {
		totalCredits += float64(a.Credits)
		totalHours += float64(a.TotalHours)
	}
	for _, a := range coTaught {
		totalCredits += float64(a.Credits) * settings.CoFacultyWeight
		totalHours += float64(a.TotalHours) * settings.CoFacultyWeight
	}

	maxCredits := settings.MaxFacultyCredits
	maxHours := settings.MaxFacultyCredits * settings.CreditHoursRatio

	var creditPct, hourPct float64
	if maxCredits > 0 {
		creditPct = totalCredits / maxCredits * 100
	}
	if maxHours > 0 {
		hourPct = totalHours / maxHours * 100
	}

	governing := creditPct
	if hourPct > governing {
		governing = hourPct
	}

	workload := &models.FacultyWorkload{
		FacultyID:        facultyID,
		DepartmentID:     departmentID,
		TotalCredits:     totalCredits,
		TotalHours:       totalHours,
		MaxCredits:       maxCredits,
		MaxHours:         maxHours,
		CreditPercentage: creditPct,
		HourPercentage:   hourPct,
		Level:            classifyWorkload(governing),
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, workload, 0)
	}

	return workload, nil
}

// InvalidateWorkload drops cached workload payloads for a faculty member.
// Called when a caller knows assignments changed and cannot wait out the TTL.
func (s *WorkloadService) InvalidateWorkload(ctx context.Context, facultyID string) error {
	if !s.cache.Enabled() {
		return nil
	}
	return s.cache.Invalidate(ctx, fmt.Sprintf("workload:%s:*", facultyID))
}

// CanTakeAdditional projects the credit percentage after adding the
// requested credits and decides admission. Two distinct denial reasons are
// surfaced: exceeding the cap outright, and landing in the high-risk band
// above 90% even though technically under the cap.
func (s *WorkloadService) CanTakeAdditional(ctx context.Context, facultyID string, req CheckAdmissionRequest) (*models.AdmissionDecision, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admission check payload")
	}

	current, err := s.ComputeWorkload(ctx, facultyID, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	var projected float64
	if current.MaxCredits > 0 {
		projected = (current.TotalCredits + req.AdditionalCredits) / current.MaxCredits * 100
	}

	decision := &models.AdmissionDecision{
		ProjectedCreditPercentage: projected,
		CurrentWorkload:           current,
	}

	switch {
	case projected > admissionOverloadPct:
		decision.Reason = fmt.Sprintf("adding %.1f credits would overload the faculty member (projected %.1f%% of maximum credits)", req.AdditionalCredits, projected)
	case projected > admissionHighRiskPct:
		decision.Reason = fmt.Sprintf("adding %.1f credits would create a high-risk load (projected %.1f%% of maximum credits)", req.AdditionalCredits, projected)
	default:
		decision.Allowed = true
	}

	return decision, nil
}

// loadSettings reads department settings, falling back to the configured
// defaults when the department has no row or leaves a field unset.
func (s *WorkloadService) loadSettings(ctx context.Context, departmentID string) (*models.DepartmentWorkloadSettings, error) {
	settings, err := s.settings.GetByDepartment(ctx, departmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.DepartmentWorkloadSettings{
				DepartmentID:      departmentID,
				CreditHoursRatio:  s.defaults.DefaultCreditHoursRatio,
				MaxFacultyCredits: s.defaults.DefaultMaxCredits,
				CoFacultyWeight:   s.defaults.DefaultCoFacultyWeight,
			}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workload settings")
	}

	if settings.CreditHoursRatio <= 0 {
		settings.CreditHoursRatio = s.defaults.DefaultCreditHoursRatio
	}
	if settings.MaxFacultyCredits <= 0 {
		settings.MaxFacultyCredits = s.defaults.DefaultMaxCredits
	}
	if settings.CoFacultyWeight <= 0 {
		settings.CoFacultyWeight = s.defaults.DefaultCoFacultyWeight
	}

	return settings, nil
}

func classifyWorkload(percentage float64) models.WorkloadLevel {
	switch {
	case percentage <= workloadLowMax:
		return models.WorkloadLow
	case percentage <= workloadNormalMax:
		return models.WorkloadNormal
	case percentage <= workloadHighMax:
		return models.WorkloadHigh
	default:
		return models.WorkloadOverload
	}
}
