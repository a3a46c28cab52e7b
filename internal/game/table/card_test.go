package table

import (
	"math/rand"
	"testing"
)

func TestBeats_TrumpOverLead(t *testing.T) {
	two := Card{Suit: Hearts, Rank: 2}
	ace := Card{Suit: Spades, Rank: Ace}

	if !two.Beats(ace, Spades) {
		t.Fatalf("2♥ should beat A♠ when spades led")
	}
	if ace.Beats(two, Spades) {
		t.Fatalf("A♠ should not beat 2♥")
	}
}

func TestBeats_WithinTrump(t *testing.T) {
	if !(Card{Suit: Hearts, Rank: King}).Beats(Card{Suit: Hearts, Rank: Queen}, Clubs) {
		t.Fatalf("K♥ should beat Q♥")
	}
	if (Card{Suit: Hearts, Rank: 3}).Beats(Card{Suit: Hearts, Rank: 4}, Clubs) {
		t.Fatalf("3♥ should not beat 4♥")
	}
}

func TestBeats_OffSuitNeverWins(t *testing.T) {
	lead := Card{Suit: Diamonds, Rank: 5}
	off := Card{Suit: Spades, Rank: Ace}

	if off.Beats(lead, Diamonds) {
		t.Fatalf("off-suit A♠ should not beat 5♦ when diamonds led")
	}
	if !lead.Beats(off, Diamonds) {
		t.Fatalf("5♦ should beat off-suit A♠")
	}
}

func TestBeats_WithinLeadSuit(t *testing.T) {
	if !(Card{Suit: Clubs, Rank: 10}).Beats(Card{Suit: Clubs, Rank: 9}, Clubs) {
		t.Fatalf("10♣ should beat 9♣ when clubs led")
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{
		{Suit: Spades, Rank: 3},
		{Suit: Hearts, Rank: 9},
		{Suit: Hearts, Rank: Ace},
		{Suit: Clubs, Rank: King},
	}
	SortHand(hand)

	for i := 1; i < len(hand); i++ {
		prev, cur := hand[i-1], hand[i]
		if cur.Suit < prev.Suit {
			t.Fatalf("suits out of order at %d: %v", i, hand)
		}
		if cur.Suit == prev.Suit && cur.Rank > prev.Rank {
			t.Fatalf("ranks out of order at %d: %v", i, hand)
		}
	}
}

func TestRemoveCard(t *testing.T) {
	hand := []Card{
		{Suit: Hearts, Rank: 2},
		{Suit: Clubs, Rank: 7},
	}
	rest, ok := RemoveCard(hand, Card{Suit: Clubs, Rank: 7})
	if !ok || len(rest) != 1 {
		t.Fatalf("expected removal, got ok=%v len=%d", ok, len(rest))
	}
	if ContainsCard(rest, Card{Suit: Clubs, Rank: 7}) {
		t.Fatalf("card still present after removal")
	}

	_, ok = RemoveCard(rest, Card{Suit: Spades, Rank: Ace})
	if ok {
		t.Fatalf("removing an absent card should report false")
	}
}

// Random tricks checked against a rules-as-written oracle: any heart present
// means the highest heart wins, otherwise the highest card of the lead suit.
func TestBeats_AgainstOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	deck := make([]Card, 0, 52)
	for _, s := range AllSuits() {
		for r := RankMin; r <= RankMax; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}

	for iter := 0; iter < 500; iter++ {
		rnd.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		cards := deck[:4]
		lead := cards[0].Suit

		want := oracleWinner(cards, lead)

		got := 0
		for i := 1; i < 4; i++ {
			if cards[i].Beats(cards[got], lead) {
				got = i
			}
		}
		if got != want {
			t.Fatalf("iter %d: cards %v lead %v: Beats picked %d, oracle %d",
				iter, cards, lead, got, want)
		}
	}
}

func oracleWinner(cards []Card, lead Suit) int {
	best := -1
	for i, c := range cards {
		if c.Suit != Hearts {
			continue
		}
		if best == -1 || c.Rank > cards[best].Rank {
			best = i
		}
	}
	if best != -1 {
		return best
	}
	for i, c := range cards {
		if c.Suit != lead {
			continue
		}
		if best == -1 || c.Rank > cards[best].Rank {
			best = i
		}
	}
	return best
}
