package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/internal/service"
	appErrors "github.com/acadly/timetable-api/pkg/errors"
)

type workloadServiceMock struct {
	workload    *models.FacultyWorkload
	workloadErr error
	decision    *models.AdmissionDecision
	decisionErr error
	lastFaculty string
	invalidated []string
}

func (m *workloadServiceMock) InvalidateWorkload(ctx context.Context, facultyID string) error {
	m.invalidated = append(m.invalidated, facultyID)
	return nil
}

func (m *workloadServiceMock) ComputeWorkload(ctx context.Context, facultyID, departmentID string) (*models.FacultyWorkload, error) {
	m.lastFaculty = facultyID
	return m.workload, m.workloadErr
}

func (m *workloadServiceMock) CanTakeAdditional(ctx context.Context, facultyID string, req service.CheckAdmissionRequest) (*models.AdmissionDecision, error) {
	m.lastFaculty = facultyID
	return m.decision, m.decisionErr
}

func TestWorkloadHandlerGetWorkload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &workloadServiceMock{
		workload: &models.FacultyWorkload{FacultyID: "fac-1", Level: models.WorkloadNormal},
	}
	handler := NewWorkloadHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/faculty/fac-1/workload?departmentId=dept-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fac-1"}}

	handler.GetWorkload(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fac-1", mockSvc.lastFaculty)
	assert.Empty(t, mockSvc.invalidated)
}

func TestWorkloadHandlerGetWorkloadRefreshInvalidatesCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &workloadServiceMock{
		workload: &models.FacultyWorkload{FacultyID: "fac-1", Level: models.WorkloadLow},
	}
	handler := NewWorkloadHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/faculty/fac-1/workload?departmentId=dept-1&refresh=true", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fac-1"}}

	handler.GetWorkload(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"fac-1"}, mockSvc.invalidated)
}

func TestWorkloadHandlerGetWorkloadMissingDepartment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWorkloadHandler(&workloadServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/faculty/fac-1/workload", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fac-1"}}

	handler.GetWorkload(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkloadHandlerCheckAdmissionDenied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &workloadServiceMock{
		decision: &models.AdmissionDecision{Allowed: false, Reason: "adding 4.0 credits would overload the faculty member (projected 106.7% of maximum credits)"},
	}
	handler := NewWorkloadHandler(mockSvc)

	payload, _ := json.Marshal(service.CheckAdmissionRequest{AdditionalCredits: 4, DepartmentID: "dept-1"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/faculty/fac-1/workload/check-admission", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fac-1"}}

	handler.CheckAdmission(c)
	// Denial still answers 200; the decision payload says no.
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.AdmissionDecision `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Allowed)
	assert.Contains(t, envelope.Data.Reason, "overload")
}

func TestWorkloadHandlerCheckAdmissionValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &workloadServiceMock{decisionErr: appErrors.ErrValidation}
	handler := NewWorkloadHandler(mockSvc)

	payload, _ := json.Marshal(service.CheckAdmissionRequest{AdditionalCredits: -1})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/faculty/fac-1/workload/check-admission", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fac-1"}}

	handler.CheckAdmission(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
