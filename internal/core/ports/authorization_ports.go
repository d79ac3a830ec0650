package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ObserverConn is an opaque send-capable handle for a live booth or
// poll-worker connection. A failed Send marks the connection dead; the
// registry drops it on the next broadcast.
type ObserverConn interface {
	Send(event any) error
}

// EventBroadcaster fans events out to the live observers of one session.
// Membership mutation must never block on a send.
type EventBroadcaster interface {
	RegisterBooth(sessionID uuid.UUID, conn ObserverConn)
	UnregisterBooth(sessionID uuid.UUID, conn ObserverConn)
	RegisterPollWorker(sessionID uuid.UUID, conn ObserverConn)
	UnregisterPollWorker(sessionID uuid.UUID, conn ObserverConn)
	BroadcastToBooths(sessionID uuid.UUID, event any)
	BroadcastToPollWorkers(sessionID uuid.UUID, event any)
}

type IssuePermitInput struct {
	SessionID    uuid.UUID
	Registration string
}

// PermitReceipt is what issuance exposes to callers: never the registration
// or the used state.
type PermitReceipt struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

type CastVoteInput struct {
	SessionID   uuid.UUID
	Token       string
	CandidateID *uuid.UUID
	NullVote    bool
}

type VoteReceipt struct {
	ID          uuid.UUID  `json:"id"`
	CandidateID *uuid.UUID `json:"candidate_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AuthorizationService interface {
	IssuePermit(ctx context.Context, input IssuePermitInput) (*PermitReceipt, error)
	CastVote(ctx context.Context, input CastVoteInput) (*VoteReceipt, error)
}
