package domain

import "github.com/google/uuid"

type CandidateResult struct {
	CandidateID   uuid.UUID `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	TotalVotes    int64     `json:"total_votes"`
}

type SessionResults struct {
	SessionID  uuid.UUID         `json:"session_id"`
	Candidates []CandidateResult `json:"candidates"`
	BlankVotes int64             `json:"blank_votes"`
	TotalVotes int64             `json:"total_votes"`
}
