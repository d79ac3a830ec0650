package domain

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"session_id"`
	Name             string    `json:"name"`
	Registration     string    `json:"registration"`
	CommissionNumber string    `json:"commission_number"`
	CreatedAt        time.Time `json:"created_at"`
}

type PollWorker struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	Name         string    `json:"name"`
	Registration string    `json:"registration"`
	CreatedAt    time.Time `json:"created_at"`
}
