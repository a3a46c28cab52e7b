package ai

import (
	"fmt"
	"math/rand"

	"tarneeb/internal/game/table"
)

// Difficulty selects a decision policy tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// BidRequest carries everything a policy may consider when bidding.
type BidRequest struct {
	Hand          []table.Card
	TeamScore     int
	OpponentScore int
	MinimumBid    int
	HandSize      int
}

// TrickContext describes the trick a policy is playing into. Position 0 is
// the lead, 3 closes the trick.
type TrickContext struct {
	Plays          []table.Play
	LeadSuit       table.Suit
	HasLead        bool
	Best           table.Play
	HasBest        bool
	PartnerWinning bool
	Position       int
	TeamScore      int
	OpponentScore  int
}

// Policy produces a bid or a card for a computer-controlled seat. Policies
// never mutate shared state; every decision is reproducible from its inputs
// (plus the injected RNG for the easy tier). Decisions are resubmitted
// through the normal command path, never trusted.
type Policy interface {
	DecideBid(req BidRequest) int
	DecideCard(hand, legal []table.Card, ctx TrickContext) table.Card
}

// NewPolicy builds the policy for a difficulty tier. The RNG is only
// consulted by the easy tier; passing nil selects an unseeded source.
func NewPolicy(d Difficulty, rnd *rand.Rand) (Policy, error) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	switch d {
	case Easy:
		return &easyPolicy{rnd: rnd}, nil
	case Medium:
		return &mediumPolicy{}, nil
	case Hard:
		return &hardPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %q", d)
	}
}

// clampBid keeps a bid inside [min, handSize].
func clampBid(bid, min, handSize int) int {
	if bid < min {
		return min
	}
	if bid > handSize {
		return handSize
	}
	return bid
}

// handShape summarises the features the medium and hard tiers bid from.
func handShape(hand []table.Card) (highCards, longestSuit int) {
	bySuit := make(map[table.Suit]int)
	for _, c := range hand {
		if c.Rank >= table.King {
			highCards++
		}
		bySuit[c.Suit]++
		if bySuit[c.Suit] > longestSuit {
			longestSuit = bySuit[c.Suit]
		}
	}
	return highCards, longestSuit
}

// lowestCard picks the weakest card: lowest rank, trumps considered last so
// hearts are not thrown away by accident.
func lowestCard(cards []table.Card) table.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cardWeight(c) < cardWeight(best) {
			best = c
		}
	}
	return best
}

// lowestBeating returns the cheapest card that would take the trick from the
// current best play, or false when none can.
func lowestBeating(cards []table.Card, ctx TrickContext) (table.Card, bool) {
	var pick table.Card
	found := false
	for _, c := range cards {
		if !c.Beats(ctx.Best.Card, ctx.LeadSuit) {
			continue
		}
		if !found || cardWeight(c) < cardWeight(pick) {
			pick = c
			found = true
		}
	}
	return pick, found
}

// cardWeight orders cards for discard decisions: non-trumps by rank, trumps
// above every non-trump.
func cardWeight(c table.Card) int {
	w := int(c.Rank)
	if c.IsTrump() {
		w += 100
	}
	return w
}
