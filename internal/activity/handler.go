package activity

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okpyo/crewledger/pkg/response"
)

// Handler handles HTTP requests for the activity feed
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// List handles GET /activity
// @Summary      List recent activity entries
// @Tags         activity
// @Produce      json
// @Param        actor_id query int false "Filter by actor"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]Entry}
// @Router       /activity [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var actorID *int64
	if raw := r.URL.Query().Get("actor_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid actor_id")
			return
		}
		actorID = &id
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	entries, total, err := h.service.List(r.Context(), actorID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list activity")
		return
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, entries, meta)
}
