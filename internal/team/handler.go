package team

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

// ActivityRecorder writes rate profile changes to the activity feed
type ActivityRecorder interface {
	RecordRateUpdated(ctx context.Context, actorID, teamID int64) (*activity.Entry, error)
}

// Handler handles HTTP requests for team operations
type Handler struct {
	service  *Service
	activity ActivityRecorder
}

// NewHandler creates a new team handler
func NewHandler(service *Service, recorder ActivityRecorder) *Handler {
	return &Handler{service: service, activity: recorder}
}

func (h *Handler) recordRateUpdate(r *http.Request, teamID int64) {
	if h.activity == nil {
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}
	h.activity.RecordRateUpdated(r.Context(), userID, teamID)
}

// Routes returns the router for team endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	// Rate profile management
	r.Get("/{id}/rates", h.GetRateProfile)
	r.Put("/{id}/rates", h.SetDefaultRate)
	r.Put("/{id}/rates/custom/{targetId}", h.SetCustomRate)
	r.Delete("/{id}/rates/custom/{targetId}", h.DeleteCustomRate)

	return r
}

// Create handles POST /teams
// @Summary      Create a new team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request body CreateTeamRequest true "Team creation request"
// @Success      201 {object} response.APIResponse{data=TeamResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /teams [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Team name is required")
		return
	}

	team, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create team")
		return
	}

	response.JSON(w, http.StatusCreated, team.ToResponse())
}

// GetByID handles GET /teams/{id}
// @Summary      Get team by ID
// @Tags         teams
// @Produce      json
// @Param        id path int true "Team ID"
// @Success      200 {object} response.APIResponse{data=TeamResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /teams/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}

	team, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get team")
		return
	}

	response.JSON(w, http.StatusOK, team.ToResponse())
}

// List handles GET /teams
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]TeamResponse}
// @Router       /teams [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	teams, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list teams")
		return
	}

	teamResponses := make([]*TeamResponse, len(teams))
	for i, t := range teams {
		teamResponses[i] = t.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, teamResponses, meta)
}

// Update handles PUT /teams/{id}
// @Summary      Update a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        id path int true "Team ID"
// @Param        request body UpdateTeamRequest true "Team update request"
// @Success      200 {object} response.APIResponse{data=TeamResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /teams/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}

	var req UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	team, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update team")
		return
	}

	response.JSON(w, http.StatusOK, team.ToResponse())
}

// Delete handles DELETE /teams/{id}
// @Summary      Delete a team
// @Tags         teams
// @Param        id path int true "Team ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /teams/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.NotFound(w, "Team not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

// GetRateProfile handles GET /teams/{id}/rates
// @Summary      Get a team's rate profile
// @Tags         teams
// @Produce      json
// @Param        id path int true "Team ID"
// @Success      200 {object} response.APIResponse{data=RateProfile}
// @Failure      404 {object} response.APIResponse
// @Router       /teams/{id}/rates [get]
func (h *Handler) GetRateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}

	profile, err := h.service.GetRateProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get rate profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// SetDefaultRate handles PUT /teams/{id}/rates
// @Summary      Set a team's default support rate
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        id path int true "Team ID"
// @Param        request body SetDefaultRateRequest true "Default rate"
// @Success      200 {object} response.APIResponse{data=RateProfile}
// @Failure      400 {object} response.APIResponse
// @Router       /teams/{id}/rates [put]
func (h *Handler) SetDefaultRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}

	var req SetDefaultRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.service.SetDefaultRate(r.Context(), id, req.DefaultRate)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNegativeRate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to set default rate")
		return
	}

	h.recordRateUpdate(r, id)

	response.JSON(w, http.StatusOK, profile)
}

// SetCustomRate handles PUT /teams/{id}/rates/custom/{targetId}
// @Summary      Set an override rate toward a counterpart team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        id path int true "Team ID"
// @Param        targetId path int true "Counterpart team ID"
// @Param        request body SetCustomRateRequest true "Override rate"
// @Success      200 {object} response.APIResponse{data=RateProfile}
// @Failure      400 {object} response.APIResponse
// @Router       /teams/{id}/rates/custom/{targetId} [put]
func (h *Handler) SetCustomRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}
	targetID, err := strconv.ParseInt(chi.URLParam(r, "targetId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid counterpart team ID")
		return
	}

	var req SetCustomRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.service.SetCustomRate(r.Context(), id, targetID, req.Rate)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNegativeRate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to set custom rate")
		return
	}

	h.recordRateUpdate(r, id)

	response.JSON(w, http.StatusOK, profile)
}

// DeleteCustomRate handles DELETE /teams/{id}/rates/custom/{targetId}
// @Summary      Remove an override rate toward a counterpart team
// @Tags         teams
// @Param        id path int true "Team ID"
// @Param        targetId path int true "Counterpart team ID"
// @Success      200 {object} response.APIResponse
// @Router       /teams/{id}/rates/custom/{targetId} [delete]
func (h *Handler) DeleteCustomRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team ID")
		return
	}
	targetID, err := strconv.ParseInt(chi.URLParam(r, "targetId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid counterpart team ID")
		return
	}

	if err := h.service.DeleteCustomRate(r.Context(), id, targetID); err != nil {
		response.InternalError(w, "Failed to delete custom rate")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Custom rate removed"})
}
