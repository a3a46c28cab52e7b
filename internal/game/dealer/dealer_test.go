package dealer

import (
	"testing"

	"tarneeb/internal/game/table"
)

func hasDuplicates(cards []table.Card) bool {
	seen := make(map[table.Card]bool)
	for _, c := range cards {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

func TestNewDeck(t *testing.T) {
	d := NewDealer(42)
	d.NewDeck()

	if len(d.deck) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(d.deck))
	}
	if hasDuplicates(d.deck) {
		t.Fatalf("deck should not contain duplicates")
	}

	suits := make(map[table.Suit]bool)
	ranks := make(map[table.Rank]bool)
	for _, c := range d.deck {
		suits[c.Suit] = true
		ranks[c.Rank] = true
	}
	if len(suits) != 4 {
		t.Fatalf("expected 4 suits, got %d", len(suits))
	}
	if len(ranks) != 13 {
		t.Fatalf("expected 13 ranks, got %d", len(ranks))
	}
}

func TestShuffleDeterministicBySeed(t *testing.T) {
	d1 := NewDealer(42)
	d1.NewDeck()
	d2 := NewDealer(42)
	d2.NewDeck()

	for i := range d1.deck {
		if d1.deck[i] != d2.deck[i] {
			t.Fatalf("expected identical decks for same seed")
		}
	}

	d3 := NewDealer(99)
	d3.NewDeck()
	diff := false
	for i := range d1.deck {
		if d1.deck[i] != d3.deck[i] {
			diff = true
			break
		}
	}
	if !diff {
		t.Fatalf("expected deck with different seed to differ")
	}
}

func TestDealHands(t *testing.T) {
	d := NewDealer(1)
	d.NewDeck()
	hands := d.DealHands()

	all := []table.Card{}
	for seat, h := range hands {
		if len(h) != table.HandSize {
			t.Fatalf("seat %d should have %d cards, got %d", seat, table.HandSize, len(h))
		}
		all = append(all, h...)
	}
	if len(all) != 52 {
		t.Fatalf("four hands should reconstruct the deck, got %d cards", len(all))
	}
	if hasDuplicates(all) {
		t.Fatalf("hands contain duplicates")
	}
	if d.Remaining() != 0 {
		t.Fatalf("expected empty deck after dealing, got %d", d.Remaining())
	}
}

func TestDealHands_Sorted(t *testing.T) {
	d := NewDealer(5)
	d.NewDeck()
	hands := d.DealHands()

	for seat, h := range hands {
		for i := 1; i < len(h); i++ {
			prev, cur := h[i-1], h[i]
			if cur.Suit < prev.Suit {
				t.Fatalf("seat %d hand not sorted by suit: %v", seat, h)
			}
			if cur.Suit == prev.Suit && cur.Rank > prev.Rank {
				t.Fatalf("seat %d hand not sorted by rank: %v", seat, h)
			}
		}
	}
}

func TestDrawResetsDeck(t *testing.T) {
	d := NewDealer(3)
	d.NewDeck()
	for i := 0; i < 52; i++ {
		d.draw()
	}
	card := d.draw()
	if card.Rank < table.RankMin || card.Rank > table.RankMax {
		t.Fatalf("invalid card returned after deck reset: %v", card)
	}
}
