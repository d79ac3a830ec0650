package domain

import "errors"

var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionCodeTaken        = errors.New("session code already exists")
	ErrSessionNotOpen          = errors.New("session is not open for voting")
	ErrInvalidStatusTransition = errors.New("invalid session status transition")

	ErrInvalidRegistration     = errors.New("registration must not be blank")
	ErrRegistrationAlreadyUsed = errors.New("a permit was already issued for this registration")

	ErrPermitNotFound       = errors.New("permit not found")
	ErrPermitAlreadyUsed    = errors.New("permit already used")
	ErrInvalidToken         = errors.New("invalid authorization token")
	ErrTokenAlreadyConsumed = errors.New("authorization token already consumed")

	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrInvalidCandidate    = errors.New("invalid candidate for this session")
	ErrAmbiguousVoteTarget = errors.New("exactly one of candidate_id or null_vote is required")

	ErrInternal = errors.New("internal server error")
)
