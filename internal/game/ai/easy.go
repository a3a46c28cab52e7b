package ai

import (
	"math/rand"

	"tarneeb/internal/game/table"
)

// easyPolicy picks near-uniformly from the legal range. It is the only tier
// that consumes entropy.
type easyPolicy struct {
	rnd *rand.Rand
}

func (p *easyPolicy) DecideBid(req BidRequest) int {
	// Stay near the floor: min .. min+2, clamped to the hand size.
	bid := req.MinimumBid + p.rnd.Intn(3)
	return clampBid(bid, req.MinimumBid, req.HandSize)
}

func (p *easyPolicy) DecideCard(hand, legal []table.Card, ctx TrickContext) table.Card {
	return legal[p.rnd.Intn(len(legal))]
}
