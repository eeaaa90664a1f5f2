package worker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okpyo/crewledger/pkg/response"
)

// Handler handles HTTP requests for worker operations
type Handler struct {
	service *Service
}

// NewHandler creates a new worker handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for worker endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /workers
// @Summary      Register a new worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        request body CreateWorkerRequest true "Worker creation request"
// @Success      201 {object} response.APIResponse{data=WorkerResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /workers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.TeamID == 0 {
		response.BadRequest(w, "Worker name and team_id are required")
		return
	}

	worker, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNegativePrice) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create worker")
		return
	}

	response.JSON(w, http.StatusCreated, worker.ToResponse())
}

// GetByID handles GET /workers/{id}
// @Summary      Get worker by ID
// @Tags         workers
// @Produce      json
// @Param        id path int true "Worker ID"
// @Success      200 {object} response.APIResponse{data=WorkerResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /workers/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid worker ID")
		return
	}

	worker, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrWorkerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get worker")
		return
	}

	response.JSON(w, http.StatusOK, worker.ToResponse())
}

// List handles GET /workers
// @Summary      List workers
// @Tags         workers
// @Produce      json
// @Param        team_id query int false "Filter by team"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]WorkerResponse}
// @Router       /workers [get]
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

	workers, total, err := h.service.List(r.Context(), teamID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list workers")
		return
	}

	workerResponses := make([]*WorkerResponse, len(workers))
	for i, wk := range workers {
		workerResponses[i] = wk.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, workerResponses, meta)
}

// Update handles PUT /workers/{id}
// @Summary      Update a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        id path int true "Worker ID"
// @Param        request body UpdateWorkerRequest true "Worker update request"
// @Success      200 {object} response.APIResponse{data=WorkerResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /workers/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid worker ID")
		return
	}

	var req UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	worker, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrWorkerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNegativePrice) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update worker")
		return
	}

	response.JSON(w, http.StatusOK, worker.ToResponse())
}

// Delete handles DELETE /workers/{id}
// @Summary      Delete a worker
// @Tags         workers
// @Param        id path int true "Worker ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /workers/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid worker ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.NotFound(w, "Worker not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Worker deleted"})
}
