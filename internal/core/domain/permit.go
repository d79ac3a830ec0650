package domain

import (
	"time"

	"github.com/google/uuid"
)

// VotePermit is a single-use authorization to cast one vote in one session.
// A permit is never deleted; its Used flag flips false to true exactly once,
// atomically with the creation of the vote it authorizes.
type VotePermit struct {
	ID           uuid.UUID  `json:"id"`
	Token        string     `json:"token"`
	SessionID    uuid.UUID  `json:"session_id"`
	Registration string     `json:"registration"`
	IssuedAt     time.Time  `json:"issued_at"`
	Used         bool       `json:"used"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
}
