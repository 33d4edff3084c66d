package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/pkg/config"
	appErrors "github.com/acadly/timetable-api/pkg/errors"
)

type assignmentRepoStub struct {
	primary  []models.SubjectAssignment
	coTaught []models.SubjectAssignment
	err      error
}

func (s assignmentRepoStub) ListActivePrimaryByFaculty(ctx context.Context, facultyID string) ([]models.SubjectAssignment, error) {
	return s.primary, s.err
}

func (s assignmentRepoStub) ListActiveCoTaughtByFaculty(ctx context.Context, facultyID string) ([]models.SubjectAssignment, error) {
	return s.coTaught, s.err
}

type settingsRepoStub struct {
	settings *models.DepartmentWorkloadSettings
	err      error
}

func (s settingsRepoStub) GetByDepartment(ctx context.Context, departmentID string) (*models.DepartmentWorkloadSettings, error) {
	if s.settings != nil {
		copied := *s.settings
		return &copied, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, sql.ErrNoRows
}

func workloadDefaults() config.WorkloadConfig {
	return config.WorkloadConfig{
		DefaultCreditHoursRatio: 15,
		DefaultMaxCredits:       30,
		DefaultCoFacultyWeight:  0.5,
	}
}

func newTestWorkloadService(assignments assignmentRepoStub, settings settingsRepoStub) *WorkloadService {
	return NewWorkloadService(assignments, settings, nil, workloadDefaults(), nil, zap.NewNop())
}

func TestComputeWorkloadWeighsCoTaughtAssignments(t *testing.T) {
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{
			{ID: "a-1", Credits: 4, TotalHours: 60},
		},
		coTaught: []models.SubjectAssignment{
			{ID: "a-2", Credits: 4, TotalHours: 60},
		},
	}
	svc := newTestWorkloadService(assignments, settingsRepoStub{})

	workload, err := svc.ComputeWorkload(context.Background(), "fac-1", "dept-1")
	require.NoError(t, err)
	// 4 full + 4 at half weight = 6 credits of a 30-credit cap.
	assert.InDelta(t, 6.0, workload.TotalCredits, 0.001)
	assert.InDelta(t, 90.0, workload.TotalHours, 0.001)
	assert.InDelta(t, 20.0, workload.CreditPercentage, 0.001)
	assert.InDelta(t, 20.0, workload.HourPercentage, 0.001)
	assert.Equal(t, models.WorkloadLow, workload.Level)
}

func TestComputeWorkloadUsesDepartmentSettings(t *testing.T) {
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{{ID: "a-1", Credits: 10, TotalHours: 100}},
	}
	settings := settingsRepoStub{settings: &models.DepartmentWorkloadSettings{
		DepartmentID:      "dept-1",
		CreditHoursRatio:  10,
		MaxFacultyCredits: 20,
		CoFacultyWeight:   0.25,
	}}
	svc := newTestWorkloadService(assignments, settings)

	workload, err := svc.ComputeWorkload(context.Background(), "fac-1", "dept-1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, workload.CreditPercentage, 0.001)
	assert.InDelta(t, 50.0, workload.HourPercentage, 0.001)
	assert.InDelta(t, 200.0, workload.MaxHours, 0.001)
	assert.Equal(t, models.WorkloadLow, workload.Level)
}

func TestComputeWorkloadGoverningPercentageIsTheWorst(t *testing.T) {
	// Credits sit at 20% but the hours blow past the hour cap.
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{{ID: "a-1", Credits: 6, TotalHours: 500}},
	}
	svc := newTestWorkloadService(assignments, settingsRepoStub{})

	workload, err := svc.ComputeWorkload(context.Background(), "fac-1", "dept-1")
	require.NoError(t, err)
	assert.Greater(t, workload.HourPercentage, workload.CreditPercentage)
	assert.Equal(t, models.WorkloadOverload, workload.Level)
}

func TestComputeWorkloadAssignmentReadFailure(t *testing.T) {
	assignments := assignmentRepoStub{err: errors.New("connection reset")}
	svc := newTestWorkloadService(assignments, settingsRepoStub{})

	workload, err := svc.ComputeWorkload(context.Background(), "fac-1", "dept-1")
	require.Error(t, err)
	assert.Nil(t, workload)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestComputeWorkloadSettingsReadFailure(t *testing.T) {
	settings := settingsRepoStub{err: errors.New("connection reset")}
	svc := newTestWorkloadService(assignmentRepoStub{}, settings)

	workload, err := svc.ComputeWorkload(context.Background(), "fac-1", "dept-1")
	require.Error(t, err)
	assert.Nil(t, workload)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestComputeWorkloadWrappedNoRowsFallsBackToDefaults(t *testing.T) {
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{{ID: "a-1", Credits: 6, TotalHours: 90}},
	}
	settings := settingsRepoStub{err: fmt.Errorf("get workload settings: %w", sql.ErrNoRows)}
	svc := newTestWorkloadService(assignments, settings)

	workload, err := svc.ComputeWorkload(context.Background(), "fac-1", "dept-1")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, workload.MaxCredits, 0.001)
	assert.InDelta(t, 20.0, workload.CreditPercentage, 0.001)
}

func TestClassifyWorkloadBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		expected   models.WorkloadLevel
	}{
		{0, models.WorkloadLow},
		{50, models.WorkloadLow},
		{50.1, models.WorkloadNormal},
		{83, models.WorkloadNormal},
		{83.1, models.WorkloadHigh},
		{100, models.WorkloadHigh},
		{100.1, models.WorkloadOverload},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, classifyWorkload(tc.percentage), "percentage %.1f", tc.percentage)
	}
}

func TestCanTakeAdditionalAllows(t *testing.T) {
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{{ID: "a-1", Credits: 12, TotalHours: 180}},
	}
	svc := newTestWorkloadService(assignments, settingsRepoStub{})

	decision, err := svc.CanTakeAdditional(context.Background(), "fac-1", CheckAdmissionRequest{AdditionalCredits: 6, DepartmentID: "dept-1"})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.InDelta(t, 60.0, decision.ProjectedCreditPercentage, 0.001)
	assert.Empty(t, decision.Reason)
}

func TestCanTakeAdditionalDeniesOverload(t *testing.T) {
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{{ID: "a-1", Credits: 28, TotalHours: 420}},
	}
	svc := newTestWorkloadService(assignments, settingsRepoStub{})

	decision, err := svc.CanTakeAdditional(context.Background(), "fac-1", CheckAdmissionRequest{AdditionalCredits: 4, DepartmentID: "dept-1"})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "overload")
}

func TestCanTakeAdditionalDeniesHighRisk(t *testing.T) {
	assignments := assignmentRepoStub{
		primary: []models.SubjectAssignment{{ID: "a-1", Credits: 26, TotalHours: 390}},
	}
	svc := newTestWorkloadService(assignments, settingsRepoStub{})

	// Projected 93.3%: under the cap but inside the high-risk band.
	decision, err := svc.CanTakeAdditional(context.Background(), "fac-1", CheckAdmissionRequest{AdditionalCredits: 2, DepartmentID: "dept-1"})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "high-risk")
}

func TestCanTakeAdditionalRejectsNegativeCredits(t *testing.T) {
	svc := newTestWorkloadService(assignmentRepoStub{}, settingsRepoStub{})

	_, err := svc.CanTakeAdditional(context.Background(), "fac-1", CheckAdmissionRequest{AdditionalCredits: -1, DepartmentID: "dept-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
