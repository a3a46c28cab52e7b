package table

// Play is a single card played into a trick by a seat.
type Play struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// Trick collects up to four plays in order. The first card fixes the lead
// suit; the winner is unset until the trick resolves.
type Trick struct {
	Plays      []Play `json:"plays"`
	LeadSuit   Suit   `json:"leadSuit"`
	HasLead    bool   `json:"hasLead"`
	WinnerSeat int    `json:"winnerSeat"`
}

// NewTrick returns an empty, unresolved trick.
func NewTrick() *Trick {
	return &Trick{
		Plays:      make([]Play, 0, 4),
		WinnerSeat: -1,
	}
}

// AddPlay appends a play. The first play of the trick sets the lead suit.
func (t *Trick) AddPlay(seat int, card Card) {
	if len(t.Plays) == 0 {
		t.LeadSuit = card.Suit
		t.HasLead = true
	}
	t.Plays = append(t.Plays, Play{Seat: seat, Card: card})
}

// HasPlayed reports whether seat has already played into this trick.
func (t *Trick) HasPlayed(seat int) bool {
	for _, p := range t.Plays {
		if p.Seat == seat {
			return true
		}
	}
	return false
}

// IsComplete reports whether all four seats have played.
func (t *Trick) IsComplete() bool {
	return len(t.Plays) == 4
}

// BestPlay returns the currently winning play, or false for an empty trick.
func (t *Trick) BestPlay() (Play, bool) {
	if len(t.Plays) == 0 {
		return Play{}, false
	}
	best := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if p.Card.Beats(best.Card, t.LeadSuit) {
			best = p
		}
	}
	return best, true
}

// Resolve determines the winning seat, records it on the trick and returns it.
// Rank uniqueness within the deck guarantees a single winner.
func (t *Trick) Resolve() int {
	best, ok := t.BestPlay()
	if !ok {
		return -1
	}
	t.WinnerSeat = best.Seat
	return best.Seat
}
