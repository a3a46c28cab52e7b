package ai

import "tarneeb/internal/game/table"

// mediumPolicy estimates its bid from hand shape and plays the cheapest card
// that still takes the trick.
type mediumPolicy struct{}

func (p *mediumPolicy) DecideBid(req BidRequest) int {
	aces := 0
	for _, c := range req.Hand {
		if c.Rank == table.Ace {
			aces++
		}
	}
	_, longest := handShape(req.Hand)
	estimate := req.MinimumBid + aces
	if longest > 5 {
		estimate += longest - 5
	}
	return clampBid(estimate, req.MinimumBid, req.HandSize)
}

func (p *mediumPolicy) DecideCard(hand, legal []table.Card, ctx TrickContext) table.Card {
	if !ctx.HasBest {
		// Leading: open cheap, keep the strong cards for later tricks.
		return lowestCard(legal)
	}
	if c, ok := lowestBeating(legal, ctx); ok {
		return c
	}
	return lowestCard(legal)
}
