package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okpyo/crewledger/pkg/response"
)

// Handler handles HTTP requests for site operations
type Handler struct {
	service *Service
}

// NewHandler creates a new site handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for site endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /sites
// @Summary      Create a new site
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        request body CreateSiteRequest true "Site creation request"
// @Success      201 {object} response.APIResponse{data=SiteResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /sites [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.TeamID == 0 {
		response.BadRequest(w, "Site name and team_id are required")
		return
	}

	site, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create site")
		return
	}

	response.JSON(w, http.StatusCreated, site.ToResponse())
}

// GetByID handles GET /sites/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid site ID")
		return
	}

	site, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSiteNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get site")
		return
	}

	response.JSON(w, http.StatusOK, site.ToResponse())
}

// List handles GET /sites
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var teamID *int64
	if teamIDStr := r.URL.Query().Get("team_id"); teamIDStr != "" {
		id, err := strconv.ParseInt(teamIDStr, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid team_id")
			return
		}
		teamID = &id
	}

	sites, total, err := h.service.List(r.Context(), teamID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list sites")
		return
	}

	siteResponses := make([]*SiteResponse, len(sites))
	for i, s := range sites {
		siteResponses[i] = s.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, siteResponses, meta)
}

// Update handles PUT /sites/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid site ID")
		return
	}

	var req UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	site, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrSiteNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update site")
		return
	}

	response.JSON(w, http.StatusOK, site.ToResponse())
}

// Delete handles DELETE /sites/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid site ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.NotFound(w, "Site not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Site deleted"})
}
