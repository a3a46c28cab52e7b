package table

// SeatView is the public projection of a seat. Hands are never exposed;
// collaborators only see the hand size.
type SeatView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	IsComputer bool   `json:"isComputer"`
	Bid        int    `json:"bid"`
	TricksWon  int    `json:"tricksWon"`
	Score      int    `json:"score"`
	HandSize   int    `json:"handSize"`
}

// Snapshot is the read-only copy published after every successful mutation.
// It is the only contract UI, network and persistence collaborators consume.
type Snapshot struct {
	GameID          string     `json:"gameId"`
	Round           int        `json:"round"`
	Trick           int        `json:"trick"`
	Phase           Phase      `json:"phase"`
	BiddingSubphase int        `json:"biddingSubphase"` // bids placed so far, 0..4
	DealerSeat      int        `json:"dealerSeat"`
	CurrentSeat     int        `json:"currentSeat"`
	Seats           []SeatView `json:"seats"`
	Team1Score      int        `json:"team1Score"`
	Team2Score      int        `json:"team2Score"`
	CurrentPlays    []Play     `json:"currentPlays"`
	CompletedTricks int        `json:"completedTricks"`
	GameOver        bool       `json:"gameOver"`
	WinningTeam     int        `json:"winningTeam"`
}

// Snapshot builds a detached copy of the aggregate's public state. Mutating
// the result never touches the game.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:          g.ID,
		Round:           g.RoundNumber,
		Trick:           g.TrickNumber,
		Phase:           g.Phase,
		DealerSeat:      g.DealerSeat,
		CurrentSeat:     g.CurrentSeat,
		Seats:           make([]SeatView, 0, 4),
		Team1Score:      g.TeamScore(1),
		Team2Score:      g.TeamScore(2),
		CompletedTricks: len(g.Tricks),
		GameOver:        g.GameOver,
		WinningTeam:     g.WinningTeam,
	}
	for _, s := range g.Seats {
		if s.Bid != BidUnset {
			snap.BiddingSubphase++
		}
		snap.Seats = append(snap.Seats, SeatView{
			ID:         s.ID,
			Name:       s.Name,
			IsComputer: s.IsComputer,
			Bid:        s.Bid,
			TricksWon:  s.TricksWon,
			Score:      s.Score,
			HandSize:   len(s.Hand),
		})
	}
	if g.CurrentTrick != nil {
		snap.CurrentPlays = append(snap.CurrentPlays, g.CurrentTrick.Plays...)
	}
	return snap
}
