package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is immutable once created. A nil CandidateID encodes a deliberate
// blank ballot, distinct from an invalid candidate.
type Vote struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"session_id"`
	CandidateID *uuid.UUID `json:"candidate_id,omitempty"`
	PermitID    uuid.UUID  `json:"permit_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
