package dealer

import (
	"math/rand"

	"tarneeb/internal/game/table"
)

// Dealer builds, shuffles and distributes the deck. It holds no rule logic.
// The RNG is injected through the seed so deals are reproducible in tests.
type Dealer struct {
	deck []table.Card
	rnd  *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		deck: make([]table.Card, 0, 52),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// NewDeck initialises a full 52-card deck and shuffles it.
func (d *Dealer) NewDeck() {
	d.deck = makeDeck()
	d.shuffle()
}

func makeDeck() []table.Card {
	deck := make([]table.Card, 0, 52)
	for _, s := range table.AllSuits() {
		for r := table.RankMin; r <= table.RankMax; r++ {
			deck = append(deck, table.Card{Suit: s, Rank: r})
		}
	}
	return deck
}

func (d *Dealer) shuffle() {
	d.rnd.Shuffle(len(d.deck), func(i, j int) {
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	})
}

// DealHands deals 13 cards to each of the four seats, one card at a time
// around the table, and returns each hand sorted.
func (d *Dealer) DealHands() [4][]table.Card {
	var hands [4][]table.Card
	for i := range hands {
		hands[i] = make([]table.Card, 0, table.HandSize)
	}
	for i := 0; i < table.HandSize; i++ {
		for seat := 0; seat < 4; seat++ {
			hands[seat] = append(hands[seat], d.draw())
		}
	}
	for seat := range hands {
		table.SortHand(hands[seat])
	}
	return hands
}

func (d *Dealer) draw() table.Card {
	if len(d.deck) == 0 {
		d.NewDeck()
	}
	c := d.deck[0]
	d.deck = d.deck[1:]
	return c
}

// Remaining reports how many cards are left undealt.
func (d *Dealer) Remaining() int {
	return len(d.deck)
}
