package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contribute(pm *PotManager, players []*Player, amounts ...int) {
	for i, amt := range amounts {
		players[i].Bet = amt
		players[i].TotalBet += amt
	}
	pm.CollectBets(players)
}

func TestPotCollectBets(t *testing.T) {
	players := testPlayers(100, 100, 100)
	pm := NewPotManager(0)
	contribute(pm, players, 10, 10, 10)

	assert.Equal(t, 30, pm.Total)
	for _, p := range players {
		assert.Equal(t, 0, p.Bet)
		assert.Equal(t, 10, p.TotalBet)
	}
}

func TestSidePotTiers(t *testing.T) {
	players := testPlayers(0, 0, 0, 0)
	pm := NewPotManager(0)
	// Seat 0 all-in for 100, seat 1 all-in for 200, seat 2 covers with
	// 300, seat 3 folded after putting in 50.
	contribute(pm, players, 100, 200, 300, 50)
	players[0].AllIn = true
	players[1].AllIn = true
	players[3].Folded = true

	pots := pm.Pots(players)
	require.Len(t, pots, 3)

	assert.Equal(t, 350, pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, pots[0].Eligible)

	assert.Equal(t, 200, pots[1].Amount)
	assert.Equal(t, []int{1, 2}, pots[1].Eligible)

	assert.Equal(t, 100, pots[2].Amount)
	assert.Equal(t, []int{2}, pots[2].Eligible)

	sum := 0
	for _, p := range pots {
		sum += p.Amount
	}
	assert.Equal(t, pm.Total, sum)
}

func TestFoldedOverflowLandsInLastPot(t *testing.T) {
	players := testPlayers(0, 0, 0)
	pm := NewPotManager(0)
	// The folder put in more than anyone still live.
	contribute(pm, players, 100, 100, 150)
	players[2].Folded = true

	pots := pm.Pots(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 350, pots[0].Amount)
	assert.Equal(t, []int{0, 1}, pots[0].Eligible)
}

func TestCarryoverSeedsMainPot(t *testing.T) {
	players := testPlayers(0, 0)
	pm := NewPotManager(40)
	assert.Equal(t, 40, pm.Total)

	contribute(pm, players, 10, 10)
	pots := pm.Pots(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 60, pots[0].Amount)
}

func TestCarryoverWithoutContributions(t *testing.T) {
	players := testPlayers(0, 0, 0)
	pm := NewPotManager(30)

	pots := pm.Pots(players)
	require.Len(t, pots, 1)
	assert.Equal(t, 30, pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, pots[0].Eligible)
}

// TestSplitPotDeterministic checks every pot size and winner count splits
// exactly, with leftovers placed clockwise from the dealer's left.
func TestSplitPotDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for amount := 1; amount <= 100; amount++ {
		for winners := 1; winners <= 6; winners++ {
			players := testPlayers(0, 0, 0, 0, 0, 0)
			g := &Game{Players: players, DealerSeat: rng.Intn(6)}

			seats := rng.Perm(6)[:winners]
			shares := g.splitPot(amount, seats)

			sum := 0
			for _, s := range shares {
				sum += s
			}
			require.Equal(t, amount, sum, "amount=%d winners=%d", amount, winners)

			base := amount / winners
			for seat, s := range shares {
				require.True(t, s == base || s == base+1, "seat %d got %d", seat, s)
			}
		}
	}
}

func TestSplitPotRemainderOrder(t *testing.T) {
	players := testPlayers(0, 0, 0, 0)
	g := &Game{Players: players, DealerSeat: 1}

	// 11 chips between seats 0 and 3: both get 5, the extra chip goes to
	// seat 3, the first winner clockwise from the dealer.
	shares := g.splitPot(11, []int{0, 3})
	assert.Equal(t, 5, shares[0])
	assert.Equal(t, 6, shares[3])
}
