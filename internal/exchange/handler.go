package exchange

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okpyo/crewledger/pkg/response"
)

const dateLayout = "2006-01-02"

// Handler handles HTTP requests for exchange settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new exchange handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for exchange endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summaries", h.GetSummaries)
	r.Get("/summaries/export", h.ExportSummaries)

	return r
}

// GetSummaries handles GET /exchange/summaries
// @Summary      Build per-team labor exchange settlement summaries
// @Description  Aggregates cross-team shifts in the date range into outgoing/incoming settlement positions per team
// @Tags         exchange
// @Produce      json
// @Param        from query string true "Range start (YYYY-MM-DD)"
// @Param        to query string true "Range end (YYYY-MM-DD)"
// @Param        team_ids query string false "Comma-separated team IDs to restrict the output"
// @Success      200 {object} response.APIResponse{data=[]TeamSummary}
// @Failure      400 {object} response.APIResponse
// @Router       /exchange/summaries [get]
func (h *Handler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	from, to, teamIDs, err := parseQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summaries, err := h.service.BuildSummaries(r.Context(), from, to, teamIDs)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build settlement summaries")
		return
	}

	response.JSON(w, http.StatusOK, summaries)
}

// ExportSummaries handles GET /exchange/summaries/export
// @Summary      Export settlement summaries as XLSX
// @Tags         exchange
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from query string true "Range start (YYYY-MM-DD)"
// @Param        to query string true "Range end (YYYY-MM-DD)"
// @Param        team_ids query string false "Comma-separated team IDs to restrict the output"
// @Success      200 {file} binary
// @Failure      400 {object} response.APIResponse
// @Router       /exchange/summaries/export [get]
func (h *Handler) ExportSummaries(w http.ResponseWriter, r *http.Request) {
	from, to, teamIDs, err := parseQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summaries, err := h.service.BuildSummaries(r.Context(), from, to, teamIDs)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build settlement summaries")
		return
	}

	data, err := BuildSummaryXLSX(from, to, summaries)
	if err != nil {
		response.InternalError(w, "Failed to render workbook")
		return
	}

	filename := "exchange_" + from.Format(dateLayout) + "_" + to.Format(dateLayout) + ".xlsx"
	response.File(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}

func parseQuery(r *http.Request) (time.Time, time.Time, []int64, error) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, nil, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, nil, errors.New("invalid to date, expected YYYY-MM-DD")
	}

	var teamIDs []int64
	if raw := r.URL.Query().Get("team_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return time.Time{}, time.Time{}, nil, errors.New("invalid team_ids")
			}
			teamIDs = append(teamIDs, id)
		}
	}

	return from, to, teamIDs, nil
}
