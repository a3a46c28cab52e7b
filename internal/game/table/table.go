package table

import (
	"fmt"
	"time"
)

// Phase is the lifecycle stage of a match.
type Phase string

const (
	PhaseDealing  Phase = "dealing"
	PhaseBidding  Phase = "bidding"
	PhasePlaying  Phase = "playing"
	PhaseRoundEnd Phase = "round_end"
	PhaseGameEnd  Phase = "game_end"
)

// BidUnset marks a seat that has not bid in the current round.
const BidUnset = -1

// HandSize is the number of cards dealt to each seat.
const HandSize = 13

// Seat is one of the four player slots. Owned by the Game aggregate and
// mutated only through engine command handlers.
type Seat struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	IsComputer bool   `json:"isComputer"`
	Hand       []Card `json:"-"`
	Bid        int    `json:"bid"`
	TricksWon  int    `json:"tricksWon"`
	Score      int    `json:"score"`
}

// Team pairs two seats. Its score is always derived from the seats.
type Team struct {
	ID    int    `json:"id"` // 1 or 2
	Seats [2]int `json:"seats"`
}

// TeamOfSeat maps a seat index to its team id. Partners alternate seats:
// 0/2 form team 1, 1/3 form team 2.
func TeamOfSeat(seat int) int {
	return seat%2 + 1
}

// NextSeat is the seat clockwise of the given one.
func NextSeat(seat int) int {
	return (seat + 1) % 4
}

// OpposingTeam returns the other team id.
func OpposingTeam(teamID int) int {
	return 3 - teamID
}

// Game is the single aggregate holding all match state.
type Game struct {
	ID    string   `json:"id"`
	Seats [4]*Seat `json:"seats"`
	Teams [2]Team  `json:"teams"`

	DealerSeat  int   `json:"dealerSeat"`
	CurrentSeat int   `json:"currentSeat"`
	Phase       Phase `json:"phase"`

	TrickNumber  int      `json:"trickNumber"` // 1..13 within a round
	CurrentTrick *Trick   `json:"currentTrick"`
	Tricks       []*Trick `json:"-"` // completed tricks, kept for display only

	RoundNumber int  `json:"roundNumber"`
	GameOver    bool `json:"gameOver"`
	WinningTeam int  `json:"winningTeam"` // 0 until decided

	CreatedAt time.Time `json:"createdAt"`
}

// NewGame builds the aggregate from four seat names and the bot mask.
// It fails fast when the table is malformed; the seat/team invariants cannot
// be restored once a round has begun.
func NewGame(id string, names [4]string, computer [4]bool, dealerSeat int) (*Game, error) {
	if dealerSeat < 0 || dealerSeat > 3 {
		return nil, fmt.Errorf("dealer seat %d out of range", dealerSeat)
	}
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("seat %d has no name", i)
		}
	}
	g := &Game{
		ID:          id,
		DealerSeat:  dealerSeat,
		CurrentSeat: NextSeat(dealerSeat),
		Phase:       PhaseDealing,
		TrickNumber: 1,
		RoundNumber: 1,
		Teams: [2]Team{
			{ID: 1, Seats: [2]int{0, 2}},
			{ID: 2, Seats: [2]int{1, 3}},
		},
		CreatedAt: time.Now(),
	}
	for i := range g.Seats {
		g.Seats[i] = &Seat{
			ID:         i,
			Name:       names[i],
			IsComputer: computer[i],
			Bid:        BidUnset,
		}
	}
	return g, nil
}

// TeamScore sums the two member seats' cumulative scores.
func (g *Game) TeamScore(teamID int) int {
	t := g.Teams[teamID-1]
	return g.Seats[t.Seats[0]].Score + g.Seats[t.Seats[1]].Score
}

// TeamBid sums the two member seats' bids for the current round.
func (g *Game) TeamBid(teamID int) int {
	t := g.Teams[teamID-1]
	return g.Seats[t.Seats[0]].Bid + g.Seats[t.Seats[1]].Bid
}

// TeamTricksWon sums the tricks the team took this round.
func (g *Game) TeamTricksWon(teamID int) int {
	t := g.Teams[teamID-1]
	return g.Seats[t.Seats[0]].TricksWon + g.Seats[t.Seats[1]].TricksWon
}

// AllBidsPlaced reports whether every seat has bid this round.
func (g *Game) AllBidsPlaced() bool {
	for _, s := range g.Seats {
		if s.Bid == BidUnset {
			return false
		}
	}
	return true
}

// TotalBid sums all four seats' bids.
func (g *Game) TotalBid() int {
	sum := 0
	for _, s := range g.Seats {
		sum += s.Bid
	}
	return sum
}

// ResetRound clears the round-scoped state: hands, bids, tricks won and the
// trick history. Cumulative scores and seat identity persist.
func (g *Game) ResetRound() {
	for _, s := range g.Seats {
		s.Hand = nil
		s.Bid = BidUnset
		s.TricksWon = 0
	}
	g.Tricks = nil
	g.CurrentTrick = nil
	g.TrickNumber = 1
}
