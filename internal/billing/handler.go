package billing

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

// ActivityRecorder writes confirmed postings to the activity feed
type ActivityRecorder interface {
	RecordBillingPosted(ctx context.Context, actorID int64, documentID string) (*activity.Entry, error)
}

// Handler handles HTTP requests for billing operations
type Handler struct {
	service  *Service
	activity ActivityRecorder
}

// NewHandler creates a new billing handler
func NewHandler(service *Service, recorder ActivityRecorder) *Handler {
	return &Handler{service: service, activity: recorder}
}

// Routes returns the router for billing endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Save)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/confirm", h.Confirm)
	r.Get("/{id}/pdf", h.ExportPDF)

	return r
}

// Save handles POST /billing
// @Summary      Create or replace a draft billing document
// @Description  The document ID is derived from team, payer and month; saving twice replaces the draft
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body SaveDocumentRequest true "Billing document"
// @Success      201 {object} response.APIResponse{data=Document}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /billing [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	doc, err := h.service.Save(r.Context(), req.ToDocument())
	if err != nil {
		h.writeSaveError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, doc)
}

// Update handles PUT /billing/{id}
// @Summary      Replace a draft billing document
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id path string true "Billing document ID"
// @Param        request body SaveDocumentRequest true "Billing document"
// @Success      200 {object} response.APIResponse{data=Document}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /billing/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SaveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	doc := req.ToDocument()
	if doc.ID != id {
		response.BadRequest(w, "Document identity fields do not match the ID in the path")
		return
	}

	doc, err := h.service.Save(r.Context(), doc)
	if err != nil {
		h.writeSaveError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, doc)
}

func (h *Handler) writeSaveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingIdentity),
		errors.Is(err, ErrInvalidPayer),
		errors.Is(err, ErrNoLineItems),
		errors.Is(err, ErrInvalidCategory):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrAlreadyConfirmed):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "Failed to save billing document")
	}
}

// List handles GET /billing?team_id=&year_month=
// @Summary      List a team's billing documents for a month
// @Tags         billing
// @Produce      json
// @Param        team_id query int true "Team ID"
// @Param        year_month query string true "Month (YYYY-MM)"
// @Success      200 {object} response.APIResponse{data=[]Document}
// @Failure      400 {object} response.APIResponse
// @Router       /billing [get]
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

	docs, err := h.service.ListByTeamMonth(r.Context(), teamID, yearMonth)
	if err != nil {
		response.InternalError(w, "Failed to list billing documents")
		return
	}

	response.JSON(w, http.StatusOK, docs)
}

// GetByID handles GET /billing/{id}
// @Summary      Get a billing document
// @Tags         billing
// @Produce      json
// @Param        id path string true "Billing document ID"
// @Success      200 {object} response.APIResponse{data=Document}
// @Failure      404 {object} response.APIResponse
// @Router       /billing/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get billing document")
		return
	}

	response.JSON(w, http.StatusOK, doc)
}

// Confirm handles POST /billing/{id}/confirm
// @Summary      Confirm a billing document and post it to the deduction ledger
// @Description  Posting is idempotent; confirming an already-confirmed document is a no-op
// @Tags         billing
// @Produce      json
// @Param        id path string true "Billing document ID"
// @Success      200 {object} response.APIResponse{data=Document}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /billing/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.service.ConfirmAndPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrMissingIdentity):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to confirm billing document")
		}
		return
	}

	if h.activity != nil {
		userID, ok := middleware.GetUserID(r.Context())
		if !ok {
			userID = 1
		}
		h.activity.RecordBillingPosted(r.Context(), userID, doc.ID)
	}

	response.JSON(w, http.StatusOK, doc)
}

// ExportPDF handles GET /billing/{id}/pdf
// @Summary      Export a billing document as PDF
// @Tags         billing
// @Produce      application/pdf
// @Param        id path string true "Billing document ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.APIResponse
// @Router       /billing/{id}/pdf [get]
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get billing document")
		return
	}

	data, err := BuildDocumentPDF(doc)
	if err != nil {
		response.InternalError(w, "Failed to render PDF")
		return
	}

	response.File(w, "application/pdf", "billing_"+doc.ID+".pdf", data)
}
