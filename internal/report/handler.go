package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okpyo/crewledger/internal/activity"
	"github.com/okpyo/crewledger/pkg/middleware"
	"github.com/okpyo/crewledger/pkg/response"
)

// ActivityRecorder writes report creations to the activity feed
type ActivityRecorder interface {
	RecordReportCreated(ctx context.Context, actorID, reportID int64) (*activity.Entry, error)
}

// Handler handles HTTP requests for report operations
type Handler struct {
	service  *Service
	activity ActivityRecorder
}

// NewHandler creates a new report handler
func NewHandler(service *Service, recorder ActivityRecorder) *Handler {
	return &Handler{service: service, activity: recorder}
}

// Routes returns the router for report endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /reports
// @Summary      Create a daily labor report
// @Description  Create a report with its attendance rows in one shot
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        request body CreateReportRequest true "Report creation request"
// @Success      201 {object} response.APIResponse{data=ReportResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /reports [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1 // Default for development
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.CreateReport(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrNoShifts) || errors.Is(err, ErrNegativeManDay) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create report")
		return
	}

	if h.activity != nil {
		h.activity.RecordReportCreated(r.Context(), userID, result.Report.ID)
	}

	resp := result.Report.ToResponse()
	resp.Shifts = make([]*ShiftResponse, len(result.Shifts))
	for i, shift := range result.Shifts {
		resp.Shifts[i] = shift.ToResponse()
	}

	response.JSON(w, http.StatusCreated, resp)
}

// GetByID handles GET /reports/{id}
// @Summary      Get report by ID
// @Tags         reports
// @Produce      json
// @Param        id path int true "Report ID"
// @Success      200 {object} response.APIResponse{data=ReportResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /reports/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	result, err := h.service.GetReportByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get report")
		return
	}

	resp := result.Report.ToResponse()
	resp.Shifts = make([]*ShiftResponse, len(result.Shifts))
	for i, shift := range result.Shifts {
		resp.Shifts[i] = shift.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// List handles GET /reports?from=YYYY-MM-DD&to=YYYY-MM-DD
// @Summary      List reports in a date range
// @Tags         reports
// @Produce      json
// @Param        from query string true "Range start (YYYY-MM-DD)"
// @Param        to query string true "Range end (YYYY-MM-DD)"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]ReportResponse}
// @Router       /reports [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	reports, total, err := h.service.ListReports(r.Context(), from, to, page, perPage)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list reports")
		return
	}

	reportResponses := make([]*ReportResponse, len(reports))
	for i, rep := range reports {
		reportResponses[i] = rep.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, reportResponses, meta)
}

// Delete handles DELETE /reports/{id}
// @Summary      Delete a report
// @Tags         reports
// @Param        id path int true "Report ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /reports/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	if err := h.service.DeleteReport(r.Context(), id); err != nil {
		response.NotFound(w, "Report not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Report deleted"})
}
