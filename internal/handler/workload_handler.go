package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/internal/service"
	appErrors "github.com/acadly/timetable-api/pkg/errors"
	"github.com/acadly/timetable-api/pkg/response"
)

type workloadService interface {
	ComputeWorkload(ctx context.Context, facultyID, departmentID string) (*models.FacultyWorkload, error)
	InvalidateWorkload(ctx context.Context, facultyID string) error
	CanTakeAdditional(ctx context.Context, facultyID string, req service.CheckAdmissionRequest) (*models.AdmissionDecision, error)
}

// WorkloadHandler exposes faculty workload endpoints.
type WorkloadHandler struct {
	service workloadService
}

// NewWorkloadHandler constructs handler.
func NewWorkloadHandler(svc workloadService) *WorkloadHandler {
	return &WorkloadHandler{service: svc}
}

// GetWorkload godoc
// @Summary Get a faculty member's current teaching workload
// @Tags Workload
// @Produce json
// @Param id path string true "Faculty ID"
// @Param departmentId query string true "Department ID"
// @Param refresh query bool false "Drop cached values before computing"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id}/workload [get]
func (h *WorkloadHandler) GetWorkload(c *gin.Context) {
	departmentID := c.Query("departmentId")
	if departmentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "departmentId query parameter is required"))
		return
	}
	if c.Query("refresh") == "true" {
		if err := h.service.InvalidateWorkload(c.Request.Context(), c.Param("id")); err != nil {
			response.Error(c, err)
			return
		}
	}
	workload, err := h.service.ComputeWorkload(c.Request.Context(), c.Param("id"), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workload, nil)
}

// CheckAdmission godoc
// @Summary Check whether a faculty member can take additional credits
// @Tags Workload
// @Accept json
// @Produce json
// @Param id path string true "Faculty ID"
// @Param payload body service.CheckAdmissionRequest true "Admission check payload"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id}/workload/check-admission [post]
func (h *WorkloadHandler) CheckAdmission(c *gin.Context) {
	var req service.CheckAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	decision, err := h.service.CanTakeAdditional(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	// A denial is a valid answer, not an error.
	response.JSON(c, http.StatusOK, decision, nil)
}
