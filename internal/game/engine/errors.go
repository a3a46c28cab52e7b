package engine

import "errors"

// Rule violations are returned, never panicked; the aggregate is untouched
// whenever one of these comes back.
var (
	ErrInvalidPhase = errors.New("action not allowed in current phase")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrInvalidBid   = errors.New("bid outside the allowed range")
	ErrInvalidCard  = errors.New("card not in hand or violates follow-suit")
)
