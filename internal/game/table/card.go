package table

import (
	"fmt"
	"sort"
)

// Suit of a playing card. Hearts is the permanent trump suit in Tarneeb.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "HEARTS"
	case Diamonds:
		return "DIAMONDS"
	case Clubs:
		return "CLUBS"
	case Spades:
		return "SPADES"
	default:
		return "?"
	}
}

// AllSuits returns the four suits in deck order.
func AllSuits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// Rank is the numeric card value, 2..14 (11=J, 12=Q, 13=K, 14=A).
type Rank int

const (
	RankMin Rank = 2
	Jack    Rank = 11
	Queen   Rank = 12
	King    Rank = 13
	Ace     Rank = 14
	RankMax Rank = Ace
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is an immutable value type with structural equality.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	glyphs := []string{"♥", "♦", "♣", "♠"}
	g := "?"
	if c.Suit >= 0 && int(c.Suit) < len(glyphs) {
		g = glyphs[c.Suit]
	}
	return c.Rank.String() + g
}

// IsTrump reports whether the card belongs to the fixed trump suit.
func (c Card) IsTrump() bool {
	return c.Suit == Hearts
}

// Beats reports whether c wins over other given the suit that led the trick.
// Trump beats non-trump; within trump or within the lead suit the higher rank
// wins; an off-suit non-trump card never wins.
func (c Card) Beats(other Card, leadSuit Suit) bool {
	if c.IsTrump() != other.IsTrump() {
		return c.IsTrump()
	}
	if c.IsTrump() {
		return c.Rank > other.Rank
	}
	if c.Suit == other.Suit {
		return c.Suit == leadSuit && c.Rank > other.Rank
	}
	return c.Suit == leadSuit
}

// SortHand orders cards by suit, then descending rank, for display and for
// deterministic hand snapshots.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit < cards[j].Suit
		}
		return cards[i].Rank > cards[j].Rank
	})
}

// ContainsCard reports whether hand holds card.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard returns hand with the first occurrence of card removed and
// whether it was present.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}
