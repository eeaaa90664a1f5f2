package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okpyo/crewledger/pkg/response"
)

var ErrEntryNotFound = errors.New("ledger entry not found")

// Store is the subset of the repository the handler needs
type Store interface {
	LoadByID(ctx context.Context, id string) (*Entry, error)
	ListByTeamMonth(ctx context.Context, teamID int64, yearMonth string) ([]*Entry, error)
	SetCarryover(ctx context.Context, id string, amount float64) (*Entry, error)
}

// Handler handles HTTP requests for ledger operations
type Handler struct {
	store Store
}

// NewHandler creates a new ledger handler
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Routes returns the router for ledger endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}/carryover", h.SetCarryover)

	return r
}

// List handles GET /ledger?team_id=&year_month=
// @Summary      List a team's deduction ledger for a month
// @Tags         ledger
// @Produce      json
// @Param        team_id query int true "Team ID"
// @Param        year_month query string true "Month (YYYY-MM)"
// @Success      200 {object} response.APIResponse{data=[]Entry}
// @Failure      400 {object} response.APIResponse
// @Router       /ledger [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(r.URL.Query().Get("team_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid team_id")
		return
	}
	yearMonth := r.URL.Query().Get("year_month")
	if yearMonth == "" {
		response.BadRequest(w, "year_month is required")
		return
	}

	entries, err := h.store.ListByTeamMonth(r.Context(), teamID, yearMonth)
	if err != nil {
		response.InternalError(w, "Failed to list ledger entries")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// GetByID handles GET /ledger/{id}
// @Summary      Get a ledger entry by its composite ID
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Ledger entry ID (teamID_workerID_YYYY-MM)"
// @Success      200 {object} response.APIResponse{data=Entry}
// @Failure      404 {object} response.APIResponse
// @Router       /ledger/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.store.LoadByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to get ledger entry")
		return
	}
	if entry == nil {
		response.NotFound(w, ErrEntryNotFound.Error())
		return
	}

	response.JSON(w, http.StatusOK, entry)
}

// SetCarryoverRequest sets the previous month carryover on an entry
type SetCarryoverRequest struct {
	Amount float64 `json:"amount"`
}

// SetCarryover handles PUT /ledger/{id}/carryover
// @Summary      Set the previous month carryover on a ledger entry
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id path string true "Ledger entry ID"
// @Param        request body SetCarryoverRequest true "Carryover amount"
// @Success      200 {object} response.APIResponse{data=Entry}
// @Failure      404 {object} response.APIResponse
// @Router       /ledger/{id}/carryover [put]
func (h *Handler) SetCarryover(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SetCarryoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	entry, err := h.store.SetCarryover(r.Context(), id, req.Amount)
	if err != nil {
		response.InternalError(w, "Failed to update carryover")
		return
	}
	if entry == nil {
		response.NotFound(w, ErrEntryNotFound.Error())
		return
	}

	response.JSON(w, http.StatusOK, entry)
}
