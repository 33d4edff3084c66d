package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadly/timetable-api/internal/models"
	"github.com/acadly/timetable-api/internal/service"
	appErrors "github.com/acadly/timetable-api/pkg/errors"
	"github.com/acadly/timetable-api/pkg/response"
)

type conflictService interface {
	CheckConflicts(ctx context.Context, req service.CheckConflictsRequest) (*models.ConflictReport, error)
	Create(ctx context.Context, req service.CreateScheduleEntryRequest) (*models.ScheduleEntry, error)
	Update(ctx context.Context, id string, req service.UpdateScheduleEntryRequest) (*models.ScheduleEntry, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, *models.Pagination, error)
	ListByBatch(ctx context.Context, batchID string) ([]models.ScheduleEntry, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleEntry, error)
}

// ScheduleEntryHandler manages timetable endpoints.
type ScheduleEntryHandler struct {
	service conflictService
}

// NewScheduleEntryHandler constructs handler.
func NewScheduleEntryHandler(svc conflictService) *ScheduleEntryHandler {
	return &ScheduleEntryHandler{service: svc}
}

// CheckConflicts godoc
// @Summary Check a candidate entry for scheduling conflicts
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body service.CheckConflictsRequest true "Candidate entry"
// @Success 200 {object} response.Envelope
// @Router /conflicts/check [post]
func (h *ScheduleEntryHandler) CheckConflicts(c *gin.Context) {
	var req service.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.service.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Conflicts are data, not errors: 200 whether or not any were found.
	response.JSON(c, http.StatusOK, report, nil)
}

// List godoc
// @Summary List schedule entries
// @Tags Schedule Entries
// @Produce json
// @Param batchId query string false "Filter by batch"
// @Param facultyId query string false "Filter by faculty"
// @Param timeSlotId query string false "Filter by time slot"
// @Param dayOfWeek query string false "Filter by day"
// @Param entryType query string false "Filter by entry type"
// @Param activeOnly query bool false "Only active entries"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedule-entries [get]
func (h *ScheduleEntryHandler) List(c *gin.Context) {
	var filter models.ScheduleEntryFilter
	filter.BatchID = c.Query("batchId")
	filter.FacultyID = c.Query("facultyId")
	filter.TimeSlotID = c.Query("timeSlotId")
	filter.DayOfWeek = strings.ToUpper(c.Query("dayOfWeek"))
	filter.EntryType = strings.ToUpper(c.Query("entryType"))
	filter.ActiveOnly = c.DefaultQuery("activeOnly", "true") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	entries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// ListByBatch godoc
// @Summary List schedule entries for a batch
// @Tags Schedule Entries
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /batches/{id}/schedule-entries [get]
func (h *ScheduleEntryHandler) ListByBatch(c *gin.Context) {
	entries, err := h.service.ListByBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ListByFaculty godoc
// @Summary List schedule entries taught by a faculty member
// @Tags Schedule Entries
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id}/schedule-entries [get]
func (h *ScheduleEntryHandler) ListByFaculty(c *gin.Context) {
	entries, err := h.service.ListByFaculty(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Create godoc
// @Summary Create schedule entry
// @Tags Schedule Entries
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleEntryRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Conflict report"
// @Router /schedule-entries [post]
func (h *ScheduleEntryHandler) Create(c *gin.Context) {
	var req service.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondWithReport(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update schedule entry
// @Tags Schedule Entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body service.UpdateScheduleEntryRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Conflict report"
// @Router /schedule-entries/{id} [put]
func (h *ScheduleEntryHandler) Update(c *gin.Context) {
	var req service.UpdateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithReport(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Deactivate godoc
// @Summary Deactivate schedule entry
// @Tags Schedule Entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204
// @Router /schedule-entries/{id} [delete]
func (h *ScheduleEntryHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// respondWithReport surfaces the conflict report alongside the error when a
// write was rejected by the engine, so callers can render the findings.
func respondWithReport(c *gin.Context, err error) {
	var reportErr *models.ConflictReportError
	if appErr := appErrors.FromError(err); appErr != nil && appErr.Err != nil {
		if re, ok := appErr.Err.(*models.ConflictReportError); ok {
			reportErr = re
		}
	}
	if reportErr != nil {
		response.ErrorWithData(c, err, reportErr.Report)
		return
	}
	response.Error(c, err)
}
