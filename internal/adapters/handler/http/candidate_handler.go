package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		service: service,
	}
}

type createCandidateRequest struct {
	Name             string `json:"name"`
	Registration     string `json:"registration"`
	CommissionNumber string `json:"commission_number"`
}

func (h *CandidateHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req createCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.Create(r.Context(), ports.CreateCandidateInput{
		SessionID:        sessionID,
		Name:             req.Name,
		Registration:     req.Registration,
		CommissionNumber: req.CommissionNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	candidates, err := h.service.ListBySession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
