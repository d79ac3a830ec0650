package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type AuthorizationHandler struct {
	service ports.AuthorizationService
}

func NewAuthorizationHandler(service ports.AuthorizationService) *AuthorizationHandler {
	return &AuthorizationHandler{
		service: service,
	}
}

type issuePermitRequest struct {
	Registration string `json:"registration"`
}

func (h *AuthorizationHandler) IssuePermit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req issuePermitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := h.service.IssuePermit(r.Context(), ports.IssuePermitInput{
		SessionID:    sessionID,
		Registration: req.Registration,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotOpen):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrInvalidRegistration):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrRegistrationAlreadyUsed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}

type castVoteRequest struct {
	PermitToken string     `json:"permit_token"`
	CandidateID *uuid.UUID `json:"candidate_id"`
	NullVote    bool       `json:"null_vote"`
}

func (h *AuthorizationHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := h.service.CastVote(r.Context(), ports.CastVoteInput{
		SessionID:   sessionID,
		Token:       req.PermitToken,
		CandidateID: req.CandidateID,
		NullVote:    req.NullVote,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAmbiguousVoteTarget):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrInvalidToken):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrInvalidCandidate):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrTokenAlreadyConsumed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}
