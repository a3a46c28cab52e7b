package engine

import "tarneeb/internal/game/table"

// DefaultWinningScore is the cumulative team score that ends the match.
const DefaultWinningScore = 41

// MinimumIndividualBid is the lowest bid a seat may place, stepped by its
// team's cumulative score.
func MinimumIndividualBid(teamScore int) int {
	switch {
	case teamScore < 30:
		return 2
	case teamScore < 40:
		return 3
	case teamScore < 50:
		return 4
	default:
		return 5
	}
}

// MinimumAggregateBid is the lowest acceptable sum of all four bids, stepped
// by the better team's cumulative score. A round whose bids total less than
// this is redealt.
func MinimumAggregateBid(maxTeamScore int) int {
	switch {
	case maxTeamScore < 30:
		return 11
	case maxTeamScore < 40:
		return 12
	case maxTeamScore < 50:
		return 13
	default:
		return 14
	}
}

// ValidBid reports whether bid is acceptable for a seat holding handSize
// cards under the given individual minimum.
func ValidBid(bid, handSize, minimumBid int) bool {
	return bid >= minimumBid && bid <= handSize
}

// Bid→points tables. Which one applies depends on the team's score before
// the round being scored.
var (
	bidPointsBelow30 = map[int]int{
		2: 2, 3: 3, 4: 4, 5: 10, 6: 12, 7: 14, 8: 16, 9: 27,
		10: 40, 11: 40, 12: 40, 13: 40,
	}
	bidPointsFrom30 = map[int]int{
		2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 7: 14, 8: 16, 9: 27,
		10: 40, 11: 40, 12: 40, 13: 40,
	}
)

// PointsForBid returns the points a team earns for meeting totalBid, given
// its score before the round. Team bids above 13 collapse into the top entry.
func PointsForBid(totalBid, scoreBefore int) int {
	if totalBid > 13 {
		totalBid = 13
	}
	if totalBid < 2 {
		totalBid = 2
	}
	if scoreBefore < 30 {
		return bidPointsBelow30[totalBid]
	}
	return bidPointsFrom30[totalBid]
}

// LegalCards computes the follow-suit legal set: with no plays yet the whole
// hand is legal; holding the lead suit restricts to exactly those cards;
// otherwise any card may be thrown. There is no trump-forcing rule.
func LegalCards(hand []table.Card, trick *table.Trick) []table.Card {
	if trick == nil || len(trick.Plays) == 0 {
		return append([]table.Card(nil), hand...)
	}
	var followed []table.Card
	for _, c := range hand {
		if c.Suit == trick.LeadSuit {
			followed = append(followed, c)
		}
	}
	if len(followed) > 0 {
		return followed
	}
	return append([]table.Card(nil), hand...)
}
