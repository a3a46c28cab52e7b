package ai

import "tarneeb/internal/game/table"

// hardPolicy layers need-based bias on the medium estimate and plays
// position-aware: leading, middle and closing seats use distinct heuristics.
type hardPolicy struct{}

func (p *hardPolicy) DecideBid(req BidRequest) int {
	base := (&mediumPolicy{}).DecideBid(req)

	pointsNeeded := DefaultTargetScore - req.TeamScore
	// Far from the target the small table entries are useless; push for the
	// bigger payouts. When the opponent is about to close the game, avoid
	// gifting them penalty rounds.
	if pointsNeeded > 25 {
		base++
	}
	if req.OpponentScore >= DefaultTargetScore-6 && pointsNeeded <= 25 {
		base--
	}
	return clampBid(base, req.MinimumBid, req.HandSize)
}

// DefaultTargetScore mirrors the engine's winning threshold for need-based
// bidding. Kept local so the policy stays a pure function of its inputs.
const DefaultTargetScore = 41

func (p *hardPolicy) DecideCard(hand, legal []table.Card, ctx TrickContext) table.Card {
	switch {
	case !ctx.HasBest:
		return p.lead(legal)
	case ctx.Position == 3:
		return p.close(legal, ctx)
	default:
		return p.middle(legal, ctx)
	}
}

// lead opens with a boss card when holding one, otherwise feeds the longest
// suit from the bottom.
func (p *hardPolicy) lead(legal []table.Card) table.Card {
	for _, c := range legal {
		if c.Rank == table.Ace && !c.IsTrump() {
			return c
		}
	}
	return lowestCard(legal)
}

// middle ducks only when the partner is winning with a card likely to hold
// against the seats still to play; otherwise it takes the trick as cheaply
// as possible.
func (p *hardPolicy) middle(legal []table.Card, ctx TrickContext) table.Card {
	if ctx.PartnerWinning && (ctx.Best.Card.IsTrump() || ctx.Best.Card.Rank >= table.Queen) {
		return lowestCard(legal)
	}
	if c, ok := lowestBeating(legal, ctx); ok {
		return c
	}
	return lowestCard(legal)
}

// close sees the whole trick: duck when the partner already has it, beat the
// best card minimally when possible, otherwise discard the lowest card.
func (p *hardPolicy) close(legal []table.Card, ctx TrickContext) table.Card {
	if ctx.PartnerWinning {
		return lowestCard(legal)
	}
	if c, ok := lowestBeating(legal, ctx); ok {
		return c
	}
	return lowestCard(legal)
}
