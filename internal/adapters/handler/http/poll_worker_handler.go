package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type PollWorkerHandler struct {
	service ports.PollWorkerService
}

func NewPollWorkerHandler(service ports.PollWorkerService) *PollWorkerHandler {
	return &PollWorkerHandler{
		service: service,
	}
}

type createPollWorkerRequest struct {
	Name         string `json:"name"`
	Registration string `json:"registration"`
}

func (h *PollWorkerHandler) CreatePollWorker(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req createPollWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	worker, err := h.service.Create(r.Context(), ports.CreatePollWorkerInput{
		SessionID:    sessionID,
		Name:         req.Name,
		Registration: req.Registration,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, worker)
}

func (h *PollWorkerHandler) ListPollWorkers(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	workers, err := h.service.ListBySession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, workers)
}
