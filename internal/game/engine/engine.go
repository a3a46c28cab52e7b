package engine

import (
	"fmt"

	"tarneeb/internal/game/ai"
	"tarneeb/internal/game/dealer"
	"tarneeb/internal/game/table"
)

// Publisher receives the game snapshot after every successful mutation and a
// human-readable error after every rejected command.
type Publisher interface {
	PublishSnapshot(snap table.Snapshot)
	PublishError(seat int, err error)
}

// NopPublisher discards everything. Useful for tests and headless runs.
type NopPublisher struct{}

func (NopPublisher) PublishSnapshot(table.Snapshot) {}
func (NopPublisher) PublishError(int, error)        {}

// Options tune engine behaviour beyond the fixed rules.
type Options struct {
	// WinningScore is the cumulative team score that ends the match.
	// Zero selects DefaultWinningScore.
	WinningScore int
	// StrictWin additionally requires both partners' individual scores to be
	// positive before a team may win.
	StrictWin bool
	// MaxRounds force-ends the match in favour of the leading team once this
	// many rounds have been scored. Zero means unlimited.
	MaxRounds int
	// AutoAdvance makes the engine consult the decision policies of
	// computer-controlled seats synchronously inside each command. Leave it
	// off when a caller wants to pace computer moves itself.
	AutoAdvance bool
}

// Engine owns one Game aggregate and is its only mutator. Commands validate
// fully before touching state, so a rejected command leaves the aggregate
// unchanged. Handlers are not re-entrant safe; concurrent callers must
// serialise through one boundary per match (see manager).
type Engine struct {
	game     *table.Game
	dealer   *dealer.Dealer
	policies [4]ai.Policy
	pub      Publisher
	opts     Options
}

// NewEngine wires an engine around an already validated aggregate.
func NewEngine(g *table.Game, d *dealer.Dealer, pub Publisher, opts Options) *Engine {
	if pub == nil {
		pub = NopPublisher{}
	}
	if opts.WinningScore == 0 {
		opts.WinningScore = DefaultWinningScore
	}
	return &Engine{game: g, dealer: d, pub: pub, opts: opts}
}

// SetPolicy attaches a decision policy to a computer-controlled seat.
func (e *Engine) SetPolicy(seat int, p ai.Policy) {
	e.policies[seat] = p
}

// Game exposes the aggregate for in-process collaborators. External
// consumers should use Snapshot.
func (e *Engine) Game() *table.Game { return e.game }

// Snapshot returns a detached copy of the public state.
func (e *Engine) Snapshot() table.Snapshot { return e.game.Snapshot() }

// Start deals the first round and opens bidding. Only valid in the dealing
// phase a fresh aggregate starts in.
func (e *Engine) Start() error {
	if e.game.Phase != table.PhaseDealing {
		e.pub.PublishError(-1, ErrInvalidPhase)
		return ErrInvalidPhase
	}
	e.deal()
	e.pub.PublishSnapshot(e.game.Snapshot())
	e.pump()
	return nil
}

// deal distributes fresh hands and opens bidding at the seat clockwise of
// the dealer. DEALING -> BIDDING.
func (e *Engine) deal() {
	e.dealer.NewDeck()
	hands := e.dealer.DealHands()
	for i, s := range e.game.Seats {
		s.Hand = hands[i]
	}
	e.game.Phase = table.PhaseBidding
	e.game.CurrentSeat = table.NextSeat(e.game.DealerSeat)
}

// PlaceBid handles the bid command for a seat. On success the snapshot is
// published; on rejection the error is published and state is untouched.
func (e *Engine) PlaceBid(seat, bid int) error {
	if err := e.placeBid(seat, bid); err != nil {
		e.pub.PublishError(seat, err)
		return err
	}
	e.pub.PublishSnapshot(e.game.Snapshot())
	e.pump()
	return nil
}

func (e *Engine) placeBid(seat, bid int) error {
	g := e.game
	if g.Phase != table.PhaseBidding {
		return ErrInvalidPhase
	}
	if seat != g.CurrentSeat {
		return ErrNotYourTurn
	}
	s := g.Seats[seat]
	min := MinimumIndividualBid(g.TeamScore(table.TeamOfSeat(seat)))
	if !ValidBid(bid, len(s.Hand), min) {
		return fmt.Errorf("%w: bid %d, allowed %d..%d", ErrInvalidBid, bid, min, len(s.Hand))
	}

	s.Bid = bid
	if !g.AllBidsPlaced() {
		g.CurrentSeat = table.NextSeat(seat)
		return nil
	}
	e.completeBidding()
	return nil
}

// completeBidding checks the aggregate minimum after the fourth bid. Short
// totals are recovered internally with a redeal, never surfaced as a
// rejection to the last bidder. BIDDING -> PLAYING, or BIDDING -> DEALING ->
// BIDDING on redeal.
func (e *Engine) completeBidding() {
	g := e.game
	maxScore := g.TeamScore(1)
	if s2 := g.TeamScore(2); s2 > maxScore {
		maxScore = s2
	}
	if g.TotalBid() < MinimumAggregateBid(maxScore) {
		g.ResetRound()
		g.Phase = table.PhaseDealing
		e.deal()
		return
	}
	g.Phase = table.PhasePlaying
	g.CurrentSeat = table.NextSeat(g.DealerSeat)
	g.CurrentTrick = table.NewTrick()
}

// PlayCard handles the play command for a seat.
func (e *Engine) PlayCard(seat int, card table.Card) error {
	if err := e.playCard(seat, card); err != nil {
		e.pub.PublishError(seat, err)
		return err
	}
	e.pub.PublishSnapshot(e.game.Snapshot())
	e.pump()
	return nil
}

func (e *Engine) playCard(seat int, card table.Card) error {
	g := e.game
	if g.Phase != table.PhasePlaying {
		return ErrInvalidPhase
	}
	if seat != g.CurrentSeat {
		return ErrNotYourTurn
	}
	s := g.Seats[seat]
	if !table.ContainsCard(LegalCards(s.Hand, g.CurrentTrick), card) {
		return fmt.Errorf("%w: %s", ErrInvalidCard, card)
	}

	s.Hand, _ = table.RemoveCard(s.Hand, card)
	g.CurrentTrick.AddPlay(seat, card)

	if !g.CurrentTrick.IsComplete() {
		g.CurrentSeat = table.NextSeat(seat)
		return nil
	}

	winner := g.CurrentTrick.Resolve()
	g.Seats[winner].TricksWon++
	g.Tricks = append(g.Tricks, g.CurrentTrick)

	if g.TrickNumber == table.HandSize {
		e.finishRound()
		return nil
	}
	g.TrickNumber++
	g.CurrentTrick = table.NewTrick()
	g.CurrentSeat = winner
	return nil
}

// finishRound scores both teams, checks the win condition and either ends
// the match or rolls into the next round. PLAYING -> ROUND_END ->
// GAME_END | DEALING, synchronously.
func (e *Engine) finishRound() {
	g := e.game
	g.Phase = table.PhaseRoundEnd

	for _, team := range g.Teams {
		e.scoreTeam(team)
	}
	e.pub.PublishSnapshot(g.Snapshot())

	if winner, ok := e.decideWinner(); ok {
		g.Phase = table.PhaseGameEnd
		g.GameOver = true
		g.WinningTeam = winner
		return
	}

	g.DealerSeat = table.NextSeat(g.DealerSeat)
	g.RoundNumber++
	g.ResetRound()
	g.Phase = table.PhaseDealing
	e.deal()
}

// scoreTeam applies the bid table for a met bid or the flat penalty for a
// failed one. The delta is split across the two seats (odd remainder goes to
// the seat that took more tricks) so the team score stays a derived sum.
func (e *Engine) scoreTeam(team table.Team) {
	g := e.game
	scoreBefore := g.TeamScore(team.ID)
	totalBid := g.TeamBid(team.ID)
	won := g.TeamTricksWon(team.ID)

	delta := -totalBid
	if won >= totalBid {
		delta = PointsForBid(totalBid, scoreBefore)
	}

	a, b := g.Seats[team.Seats[0]], g.Seats[team.Seats[1]]
	half := delta / 2
	rest := delta - half
	if b.TricksWon > a.TricksWon {
		a, b = b, a
	}
	a.Score += rest
	b.Score += half
}

// decideWinner applies the winning threshold; with StrictWin a team also
// needs both partners individually positive. When both teams cross in the
// same round the higher total takes it, a dead tie plays on. MaxRounds, when
// set, force-ends the match for the current leader.
func (e *Engine) decideWinner() (int, bool) {
	g := e.game
	s1, s2 := g.TeamScore(1), g.TeamScore(2)

	qualifies := func(teamID, score int) bool {
		if score < e.opts.WinningScore {
			return false
		}
		if !e.opts.StrictWin {
			return true
		}
		t := g.Teams[teamID-1]
		return g.Seats[t.Seats[0]].Score > 0 && g.Seats[t.Seats[1]].Score > 0
	}

	q1, q2 := qualifies(1, s1), qualifies(2, s2)
	switch {
	case q1 && q2:
		if s1 == s2 {
			break
		}
		if s1 > s2 {
			return 1, true
		}
		return 2, true
	case q1:
		return 1, true
	case q2:
		return 2, true
	}

	if e.opts.MaxRounds > 0 && g.RoundNumber >= e.opts.MaxRounds {
		if s1 >= s2 {
			return 1, true
		}
		return 2, true
	}
	return 0, false
}

// ValidBids lists the bids the seat may place right now; empty unless it is
// that seat's turn to bid.
func (e *Engine) ValidBids(seat int) []int {
	g := e.game
	if g.Phase != table.PhaseBidding || seat != g.CurrentSeat {
		return nil
	}
	min := MinimumIndividualBid(g.TeamScore(table.TeamOfSeat(seat)))
	var bids []int
	for b := min; b <= len(g.Seats[seat].Hand); b++ {
		bids = append(bids, b)
	}
	return bids
}

// ValidCards lists the cards the seat may play right now; empty unless it is
// that seat's turn. Calling it repeatedly without an intervening play
// returns identical results.
func (e *Engine) ValidCards(seat int) []table.Card {
	g := e.game
	if g.Phase != table.PhasePlaying || seat != g.CurrentSeat {
		return nil
	}
	return LegalCards(g.Seats[seat].Hand, g.CurrentTrick)
}

// CurrentSeatIsComputer reports whether the match is waiting on a policy
// decision rather than human input.
func (e *Engine) CurrentSeatIsComputer() bool {
	g := e.game
	if g.GameOver {
		return false
	}
	if g.Phase != table.PhaseBidding && g.Phase != table.PhasePlaying {
		return false
	}
	s := g.Seats[g.CurrentSeat]
	return s.IsComputer && e.policies[s.ID] != nil
}

// Decision is an eagerly computed move for a computer seat, ready to be
// resubmitted through the command path.
type Decision struct {
	Seat int
	Bid  int
	Card table.Card
	Play bool // true = card, false = bid
}

// ComputeDecision consults the current seat's policy without mutating
// anything. Pacing between computing and applying a decision belongs to the
// caller and must never alter the decision itself.
func (e *Engine) ComputeDecision() (Decision, error) {
	g := e.game
	if !e.CurrentSeatIsComputer() {
		return Decision{}, fmt.Errorf("seat %d is not awaiting a computer decision", g.CurrentSeat)
	}
	seat := g.CurrentSeat
	s := g.Seats[seat]
	policy := e.policies[seat]
	teamID := table.TeamOfSeat(seat)

	if g.Phase == table.PhaseBidding {
		bid := policy.DecideBid(ai.BidRequest{
			Hand:          append([]table.Card(nil), s.Hand...),
			TeamScore:     g.TeamScore(teamID),
			OpponentScore: g.TeamScore(table.OpposingTeam(teamID)),
			MinimumBid:    MinimumIndividualBid(g.TeamScore(teamID)),
			HandSize:      len(s.Hand),
		})
		return Decision{Seat: seat, Bid: bid}, nil
	}

	legal := LegalCards(s.Hand, g.CurrentTrick)
	ctx := ai.TrickContext{
		Plays:         append([]table.Play(nil), g.CurrentTrick.Plays...),
		LeadSuit:      g.CurrentTrick.LeadSuit,
		HasLead:       g.CurrentTrick.HasLead,
		Position:      len(g.CurrentTrick.Plays),
		TeamScore:     g.TeamScore(teamID),
		OpponentScore: g.TeamScore(table.OpposingTeam(teamID)),
	}
	if best, ok := g.CurrentTrick.BestPlay(); ok {
		ctx.Best = best
		ctx.HasBest = true
		ctx.PartnerWinning = table.TeamOfSeat(best.Seat) == teamID
	}
	card := policy.DecideCard(append([]table.Card(nil), s.Hand...), legal, ctx)
	return Decision{Seat: seat, Card: card, Play: true}, nil
}

// Apply resubmits a computed decision through the normal command path; it
// receives no special trust.
func (e *Engine) Apply(d Decision) error {
	if d.Play {
		return e.PlayCard(d.Seat, d.Card)
	}
	return e.PlaceBid(d.Seat, d.Bid)
}

// pump advances computer seats until a human is on turn or the game ends.
// Runs as a loop, not recursion: a redeal cascade with four computer seats
// must not grow the stack. Only active when AutoAdvance is set.
func (e *Engine) pump() {
	if !e.opts.AutoAdvance {
		return
	}
	for e.CurrentSeatIsComputer() {
		d, err := e.ComputeDecision()
		if err != nil {
			return
		}
		if err := e.apply(d); err != nil {
			// A policy produced an illegal move; stop rather than spin.
			return
		}
	}
}

// apply is Apply without re-entering pump.
func (e *Engine) apply(d Decision) error {
	var err error
	if d.Play {
		err = e.playCard(d.Seat, d.Card)
	} else {
		err = e.placeBid(d.Seat, d.Bid)
	}
	if err != nil {
		e.pub.PublishError(d.Seat, err)
		return err
	}
	e.pub.PublishSnapshot(e.game.Snapshot())
	return nil
}
