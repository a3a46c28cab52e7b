package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame("g1", [4]string{"a", "b", "c", "d"}, [4]bool{}, 0)
	require.NoError(t, err)
	return g
}

func TestNewGame_Validation(t *testing.T) {
	_, err := NewGame("g", [4]string{"a", "", "c", "d"}, [4]bool{}, 0)
	assert.Error(t, err, "empty seat name must be rejected")

	_, err = NewGame("g", [4]string{"a", "b", "c", "d"}, [4]bool{}, 4)
	assert.Error(t, err, "dealer seat out of range must be rejected")
}

func TestNewGame_InitialState(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, PhaseDealing, g.Phase)
	assert.Equal(t, 1, g.CurrentSeat, "bidding opens clockwise of the dealer")
	assert.Equal(t, 1, g.RoundNumber)
	for _, s := range g.Seats {
		assert.Equal(t, BidUnset, s.Bid)
	}
}

func TestTeamMapping(t *testing.T) {
	assert.Equal(t, 1, TeamOfSeat(0))
	assert.Equal(t, 2, TeamOfSeat(1))
	assert.Equal(t, 1, TeamOfSeat(2))
	assert.Equal(t, 2, TeamOfSeat(3))

	assert.Equal(t, 2, OpposingTeam(1))
	assert.Equal(t, 1, OpposingTeam(2))

	assert.Equal(t, 0, NextSeat(3), "seat order wraps")
}

func TestTeamScoreIsDerived(t *testing.T) {
	g := newTestGame(t)
	g.Seats[0].Score = 10
	g.Seats[2].Score = 7
	g.Seats[1].Score = -3

	assert.Equal(t, 17, g.TeamScore(1))
	assert.Equal(t, -3, g.TeamScore(2))
}

func TestTotalBidAndAllBidsPlaced(t *testing.T) {
	g := newTestGame(t)
	assert.False(t, g.AllBidsPlaced())

	for i, s := range g.Seats {
		s.Bid = 2 + i
	}
	assert.True(t, g.AllBidsPlaced())
	assert.Equal(t, 2+3+4+5, g.TotalBid())
	assert.Equal(t, 2+4, g.TeamBid(1))
	assert.Equal(t, 3+5, g.TeamBid(2))
}

func TestResetRound_KeepsScores(t *testing.T) {
	g := newTestGame(t)
	g.Seats[0].Score = 12
	g.Seats[0].Bid = 4
	g.Seats[0].TricksWon = 5
	g.Seats[0].Hand = []Card{{Suit: Clubs, Rank: 9}}
	g.CurrentTrick = NewTrick()
	g.Tricks = []*Trick{NewTrick()}
	g.TrickNumber = 8

	g.ResetRound()

	assert.Equal(t, 12, g.Seats[0].Score, "cumulative score survives the reset")
	assert.Equal(t, BidUnset, g.Seats[0].Bid)
	assert.Zero(t, g.Seats[0].TricksWon)
	assert.Empty(t, g.Seats[0].Hand)
	assert.Nil(t, g.CurrentTrick)
	assert.Nil(t, g.Tricks)
	assert.Equal(t, 1, g.TrickNumber)
}
