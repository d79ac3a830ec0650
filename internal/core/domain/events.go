package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types pushed to live observer connections. Field names are part of
// the wire contract with booth and poll-worker clients.
const (
	EventPermitIssued   = "permit_issued"
	EventVoteRegistered = "vote_registered"
	EventAuthorized     = "authorized"
	EventError          = "error"
)

type PermitIssuedEvent struct {
	Type     string `json:"type"`
	Token    string `json:"token"`
	IssuedAt string `json:"issued_at"`
}

type VoteRegisteredEvent struct {
	Type        string     `json:"type"`
	Token       string     `json:"token"`
	UsedAt      string     `json:"used_at"`
	CandidateID *uuid.UUID `json:"candidate_id"`
	NullVote    bool       `json:"null_vote"`
}

type ErrorEvent struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

func NewPermitIssuedEvent(token string, issuedAt time.Time) PermitIssuedEvent {
	return PermitIssuedEvent{
		Type:     EventPermitIssued,
		Token:    token,
		IssuedAt: issuedAt.UTC().Format(time.RFC3339),
	}
}

func NewVoteRegisteredEvent(token string, usedAt time.Time, candidateID *uuid.UUID) VoteRegisteredEvent {
	return VoteRegisteredEvent{
		Type:        EventVoteRegistered,
		Token:       token,
		UsedAt:      usedAt.UTC().Format(time.RFC3339),
		CandidateID: candidateID,
		NullVote:    candidateID == nil,
	}
}

func NewErrorEvent(detail string) ErrorEvent {
	return ErrorEvent{Type: EventError, Detail: detail}
}
