package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionPlanned    SessionStatus = "planned"
	SessionInProgress SessionStatus = "in_progress"
	SessionClosed     SessionStatus = "closed"
)

type VotingSession struct {
	ID            uuid.UUID     `json:"id"`
	Code          string        `json:"code"`
	ExpectedVotes int           `json:"expected_votes"`
	Status        SessionStatus `json:"status"`
	StartTime     *time.Time    `json:"start_time,omitempty"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// SessionOverview extends a session with its live vote progress.
type SessionOverview struct {
	VotingSession
	TotalVotes     int64 `json:"total_votes"`
	RemainingVotes int64 `json:"remaining_votes"`
}
