package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/dealerschoice/internal/deck"
	"github.com/cardhouse/dealerschoice/internal/eval"
)

func TestKingsAndLowsAllDropCarryover(t *testing.T) {
	g := newTestGame(t, GameKingsAndLows, Stakes{Ante: 10}, 21, 500, 500, 500)
	require.NoError(t, g.StartHand())

	require.Equal(t, PhaseDropOrStay, g.Phase)
	assert.Equal(t, 30, g.Pot.Total)
	assert.ElementsMatch(t, []int{0, 1, 2}, g.PendingSeats())

	for seat := 0; seat < 3; seat++ {
		require.NoError(t, g.HandleCommand(Command{Seat: seat, Action: Drop}))
	}

	require.Equal(t, PhaseComplete, g.Phase)
	assert.Nil(t, g.Result, "no showdown when everyone drops")
	assert.Equal(t, 30, g.Carryover)
	for _, p := range g.Players {
		assert.Equal(t, 490, p.Chips)
	}
	assert.Equal(t, 1500, totalChips(g))
}

func TestKingsAndLowsCarryoverSkipsAntes(t *testing.T) {
	g := newTestGame(t, GameKingsAndLows, Stakes{Ante: 10}, 22, 500, 500, 500)
	require.NoError(t, g.StartHand())
	for seat := 0; seat < 3; seat++ {
		require.NoError(t, g.HandleCommand(Command{Seat: seat, Action: Drop}))
	}
	require.Equal(t, 30, g.Carryover)

	require.NoError(t, g.StartHand())
	assert.Equal(t, PhaseDropOrStay, g.Phase)
	assert.Equal(t, 30, g.Pot.Total, "carried pot seeds the next hand")
	for _, p := range g.Players {
		assert.Equal(t, 490, p.Chips, "no antes while a pot carries over")
	}
}

func TestKingsAndLowsLosersMatchPot(t *testing.T) {
	g := newTestGame(t, GameKingsAndLows, Stakes{Ante: 10}, 23, 500, 500, 500)
	require.NoError(t, g.StartHand())

	require.NoError(t, g.HandleCommand(Command{Seat: 0, Action: Stay}))
	require.NoError(t, g.HandleCommand(Command{Seat: 1, Action: Stay}))
	require.NoError(t, g.HandleCommand(Command{Seat: 2, Action: Drop}))

	require.Equal(t, PhaseDraw, g.Phase)
	assert.True(t, g.Players[2].Folded)

	for g.Phase == PhaseDraw {
		seat := g.PendingSeats()[0]
		require.NoError(t, g.HandleCommand(Command{Seat: seat, Action: DrawCards}))
	}

	require.Equal(t, PhaseComplete, g.Phase)
	require.NotNil(t, g.Result)
	assert.Equal(t, 30, g.Result.TotalPot)

	// Every staying loser matched the pot into the carryover.
	losers := 0
	for seat := 0; seat <= 1; seat++ {
		if g.Result.Winnings[seat] == 0 {
			losers++
			assert.Equal(t, 460, g.Players[seat].Chips)
		}
	}
	assert.Equal(t, losers*30, g.Carryover)
	assert.Equal(t, 1500, totalChips(g))
}

func TestKingsAndLowsLoneStayerVsDeck(t *testing.T) {
	g := newTestGame(t, GameKingsAndLows, Stakes{Ante: 10}, 24, 500, 500, 500)
	require.NoError(t, g.StartHand())

	require.NoError(t, g.HandleCommand(Command{Seat: 0, Action: Drop}))
	require.NoError(t, g.HandleCommand(Command{Seat: 1, Action: Stay}))
	require.NoError(t, g.HandleCommand(Command{Seat: 2, Action: Drop}))

	require.Equal(t, PhasePlayerVsDeck, g.Phase)
	assert.Equal(t, []int{1}, g.PendingSeats())

	require.NoError(t, g.HandleCommand(Command{Seat: 1, Action: DeckDraw}))

	require.Equal(t, PhaseComplete, g.Phase)
	require.NotNil(t, g.Result)
	assert.Len(t, g.Result.DeckHand, 5)

	if g.Result.DeckWins {
		// Pot rolls over and the loser matches it.
		assert.Equal(t, 0, g.Result.Winnings[1])
		assert.Equal(t, 60, g.Carryover)
		assert.Equal(t, 460, g.Players[1].Chips)
	} else {
		assert.Equal(t, 30, g.Result.Winnings[1])
		assert.Equal(t, 0, g.Carryover)
		assert.Equal(t, 520, g.Players[1].Chips)
	}
	assert.Equal(t, 1500, totalChips(g))
}

func TestKingsAndLowsStayRequiresCoverage(t *testing.T) {
	g := newTestGame(t, GameKingsAndLows, Stakes{Ante: 10}, 25, 500, 15, 500)
	require.NoError(t, g.StartHand())

	// Seat 1 has 5 chips left after the ante and cannot cover the pot.
	err := g.HandleCommand(Command{Seat: 1, Action: Stay})
	assert.ErrorIs(t, err, ErrInsufficientChips)

	require.NoError(t, g.HandleCommand(Command{Seat: 1, Action: Drop}))
}

func TestKingsAndLowsUncoveredSeats(t *testing.T) {
	g := newTestGame(t, GameKingsAndLows, Stakes{Ante: 10}, 26, 500, 500, 500)
	require.NoError(t, g.StartHand())
	for seat := 0; seat < 3; seat++ {
		require.NoError(t, g.HandleCommand(Command{Seat: seat, Action: Drop}))
	}
	require.Equal(t, 30, g.Carryover)

	g.Players[1].Chips = 20
	assert.Equal(t, []int{1}, g.UncoveredSeats(), "a stack below the carried pot is short")

	g.Players[2].Chips = 0
	g.Players[2].Status = StatusSittingOut
	assert.Equal(t, []int{1}, g.UncoveredSeats(), "benched seats are not checked")

	g.Players[1].Chips = 30
	assert.Nil(t, g.UncoveredSeats())
}

func TestKingsAndLowsWildEvaluation(t *testing.T) {
	rule := eval.WithLowestWild(eval.WildRanks(deck.King))

	// The king and both threes (lowest rank) are wild, joining the pair
	// of tens for five of a kind.
	v := eval.Evaluate([]deck.Card{
		deck.NewCard(deck.Spades, deck.King),
		deck.NewCard(deck.Hearts, deck.Three),
		deck.NewCard(deck.Clubs, deck.Three),
		deck.NewCard(deck.Diamonds, deck.Ten),
		deck.NewCard(deck.Spades, deck.Ten),
	}, rule)
	assert.Equal(t, eval.FiveOfAKind, v.Category)
}
