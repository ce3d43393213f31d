package services

import "errors"

// Validation errors: rejected before any mutation.
var (
	ErrInvalidWindow = errors.New("event end time must be after start time")
	ErrInvalidPrize  = errors.New("prize winner count must be at least 1")
	ErrNoPrizes      = errors.New("no prizes defined")
	ErrInvalidLots   = errors.New("lot count must be a positive number")
)

// Conflict errors: the operation was already done or is not legal in the
// current state. Callers render these as "already done", not as failures.
var (
	ErrAlreadyEntered         = errors.New("already entered this giveaway")
	ErrAlreadyDrawn           = errors.New("giveaway has already been drawn")
	ErrNotDrawn               = errors.New("giveaway has not been drawn yet")
	ErrEventNotOpen           = errors.New("event is not open for entries")
	ErrEventNotEnded          = errors.New("event has not ended yet")
	ErrNoPendingSlots         = errors.New("no pending application slots")
	ErrWonCountExceedsPending = errors.New("won count exceeds pending slots")
	ErrEmailTaken             = errors.New("email is already registered")
)

// Not-found and authorization errors.
var (
	ErrGiveawayNotFound = errors.New("giveaway not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrRaffleNotFound   = errors.New("raffle not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrNotCreator       = errors.New("only the event creator may perform this action")
	ErrInvalidLogin     = errors.New("invalid email or password")
)
