package game

import "errors"

// Rule violations are returned to the caller and never advance game state.
// Only invariant violations (deck corruption, chip imbalance) are fatal to
// the table; those are wrapped with ErrInvariant.
var (
	ErrNotPlayersTurn    = errors.New("not player's turn")
	ErrRoundComplete     = errors.New("betting round already complete")
	ErrBelowMinimumBet   = errors.New("bet below minimum")
	ErrRaiseCapExceeded  = errors.New("raise cap exceeded")
	ErrActionNotAllowed  = errors.New("action not allowed")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrWrongPhase        = errors.New("wrong phase for action")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNotSupported      = errors.New("not supported for this variant")
	ErrHandInProgress    = errors.New("hand already in progress")
	ErrTooFewPlayers     = errors.New("not enough players")
	ErrTooManyPlayers    = errors.New("too many players for variant")

	ErrInvariant     = errors.New("game invariant violated")
	ErrDeckExhausted = errors.New("deck exhausted during deal")
)
