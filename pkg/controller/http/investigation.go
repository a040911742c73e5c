package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
	"github.com/kord-legal/kord/pkg/usecase"
)

const defaultListLimit = 20

// InvestigationHandler exposes the staged investigation API
type InvestigationHandler struct {
	uc usecase.InvestigationUseCase
}

// NewInvestigationHandler creates a new investigation handler
func NewInvestigationHandler(uc usecase.InvestigationUseCase) *InvestigationHandler {
	return &InvestigationHandler{
		uc: uc,
	}
}

// createInvestigationRequest is the request body for starting an
// investigation
type createInvestigationRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename,omitempty"`
}

// investigationResponse is the wire shape of an investigation snapshot.
// The brief text itself is not echoed back.
type investigationResponse struct {
	ID          types.InvestigationID     `json:"id"`
	Status      types.InvestigationStatus `json:"status"`
	Filename    string                    `json:"filename,omitempty"`
	Words       int                       `json:"words"`
	Steps       []string                  `json:"steps"`
	CurrentStep int                       `json:"current_step"`
	StepLabel   string                    `json:"step_label,omitempty"`
	Report      *model.Report             `json:"report,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

func toInvestigationResponse(inv *model.Investigation) *investigationResponse {
	labels := make([]string, 0, len(inv.Steps))
	for _, s := range inv.Steps {
		labels = append(labels, s.Label)
	}

	return &investigationResponse{
		ID:          inv.ID,
		Status:      inv.Status,
		Filename:    inv.Brief.Filename,
		Words:       inv.Brief.WordCount(),
		Steps:       labels,
		CurrentStep: inv.CurrentStep,
		StepLabel:   inv.CurrentStepLabel(),
		Report:      inv.Report,
		Error:       inv.Error,
	}
}

// HandleCreate handles POST /api/investigations
func (h *InvestigationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createInvestigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	brief, err := model.NewBrief(req.Text, req.Filename)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	inv, err := h.uc.Start(r.Context(), brief)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, toInvestigationResponse(inv))
}

// HandleGet handles GET /api/investigations/{investigationID}
func (h *InvestigationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := types.InvestigationID(chi.URLParam(r, "investigationID"))

	inv, err := h.uc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrInvestigationNotFound) {
			writeError(w, err, http.StatusNotFound)
			return
		}
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toInvestigationResponse(inv))
}

// HandleList handles GET /api/investigations
func (h *InvestigationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	investigations, err := h.uc.List(r.Context(), defaultListLimit)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	resp := make([]*investigationResponse, 0, len(investigations))
	for _, inv := range investigations {
		resp = append(resp, toInvestigationResponse(inv))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"investigations": resp,
	})
}
