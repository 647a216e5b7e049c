package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/dealerschoice/internal/deck"
	"github.com/cardhouse/dealerschoice/internal/eval"
)

func TestFollowTheQueenWilds(t *testing.T) {
	mk := func(ranks ...deck.Rank) []deck.Card {
		cards := make([]deck.Card, len(ranks))
		for i, r := range ranks {
			cards[i] = deck.NewCard(deck.Clubs, r)
		}
		return cards
	}
	wildRanks := func(g *Game) map[deck.Rank]bool {
		rule := followQueenWilds(g)
		out := make(map[deck.Rank]bool)
		for r := deck.Two; r <= deck.Ace; r++ {
			sample := []deck.Card{deck.NewCard(deck.Hearts, r)}
			if rule(sample)[0] {
				out[r] = true
			}
		}
		return out
	}

	// No queen up: only queens are wild.
	g := &Game{UpCardLog: mk(deck.Five, deck.Nine)}
	assert.Equal(t, map[deck.Rank]bool{deck.Queen: true}, wildRanks(g))

	// The card after the last face-up queen joins the wilds.
	g = &Game{UpCardLog: mk(deck.Five, deck.Queen, deck.Nine)}
	assert.Equal(t, map[deck.Rank]bool{deck.Queen: true, deck.Nine: true}, wildRanks(g))

	// A later queen resets the follower.
	g = &Game{UpCardLog: mk(deck.Queen, deck.Nine, deck.Queen, deck.Four)}
	assert.Equal(t, map[deck.Rank]bool{deck.Queen: true, deck.Four: true}, wildRanks(g))

	// A queen as the final up-card leaves only queens wild until the
	// next street.
	g = &Game{UpCardLog: mk(deck.Nine, deck.Queen)}
	assert.Equal(t, map[deck.Rank]bool{deck.Queen: true}, wildRanks(g))
}

func TestFollowTheQueenHandRuns(t *testing.T) {
	g := newTestGame(t, GameFollowTheQueen, Stakes{Ante: 2, SmallBet: 10}, 31, 500, 500, 500)
	require.NoError(t, g.StartHand())

	for g.Phase != PhaseComplete {
		checkOrCall(t, g)
	}
	require.NotNil(t, g.Result)
	assert.Len(t, g.UpCardLog, 12, "three players, four up-cards each")
	assert.Equal(t, 1500, totalChips(g))
}

func TestTwosJacksAxeWilds(t *testing.T) {
	hand := []deck.Card{
		deck.NewCard(deck.Hearts, deck.Two),
		deck.NewCard(deck.Spades, deck.Jack),
		deck.NewCard(deck.Diamonds, deck.King),
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Clubs, deck.Seven),
	}
	flags := twosJacksAxeWilds(hand)
	assert.Equal(t, []bool{true, true, true, false, false}, flags,
		"twos, jacks and only the king of diamonds are wild")
}

func TestOmahaHandUsesFourHoleCards(t *testing.T) {
	g := newTestGame(t, GameOmaha, Stakes{SmallBlind: 5, BigBlind: 10}, 33, 500, 500, 500)
	require.NoError(t, g.StartHand())

	for _, p := range g.Players {
		assert.Len(t, p.Hole, 4)
	}
	for g.Phase != PhaseComplete {
		checkOrCall(t, g)
	}
	require.NotNil(t, g.Result)
	assert.Len(t, g.Board, 5)
	assert.Equal(t, 1500, totalChips(g))

	// Showdown values must respect the two-hole-card constraint.
	for _, h := range g.Result.Hands {
		p := g.Players[h.Seat]
		expect := eval.EvaluateOmaha(p.Hole, g.Board, eval.NoWilds)
		assert.Zero(t, expect.Compare(h.Value))
	}
}

func TestSnapshotRedaction(t *testing.T) {
	g := newTestGame(t, GameTexasHoldem, Stakes{SmallBlind: 5, BigBlind: 10}, 35, 500, 500, 500)
	require.NoError(t, g.StartHand())

	snap := g.Snapshot(0)
	assert.Len(t, snap.Players[0].Hole, 2, "viewer sees their own cards")
	assert.Empty(t, snap.Players[1].Hole, "opponent cards are hidden")
	assert.Equal(t, 2, snap.Players[1].HoleCount)

	spectator := g.Snapshot(-1)
	for _, pv := range spectator.Players {
		assert.Empty(t, pv.Hole)
	}

	actor := g.Round.ActorSeat
	actorView := g.Snapshot(actor)
	require.NotNil(t, actorView.Actions, "actor sees their legal actions")
	assert.True(t, actorView.Actions.CanFold)
}

func TestSnapshotShowsHandsAfterShowdown(t *testing.T) {
	g := newTestGame(t, GameTexasHoldem, Stakes{SmallBlind: 5, BigBlind: 10}, 36, 500, 500, 500)
	require.NoError(t, g.StartHand())
	for g.Phase != PhaseComplete {
		checkOrCall(t, g)
	}

	snap := g.Snapshot(-1)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 30, snap.Result.Pot)
	for _, h := range snap.Result.Hands {
		assert.Len(t, h.Cards, 7)
		assert.NotEmpty(t, h.Hand)
		assert.NotEmpty(t, snap.Players[h.Seat].Hole, "shown hands are revealed")
	}
}

func TestDrawRecyclesDiscards(t *testing.T) {
	// Six players discarding five cards each outruns a 52-card deck; the
	// engine shuffles collected discards back in.
	g := newTestGame(t, GameFiveCardDraw, Stakes{Ante: 5}, 37, 500, 500, 500, 500, 500, 500)
	require.NoError(t, g.StartHand())

	checkOrCall(t, g)
	require.Equal(t, PhaseDraw, g.Phase)

	for g.Phase == PhaseDraw {
		seat := g.PendingSeats()[0]
		require.NoError(t, g.HandleCommand(Command{
			Seat: seat, Action: DrawCards, Discards: []int{0, 1, 2, 3, 4},
		}))
	}

	for _, p := range g.Players {
		assert.Len(t, p.Hole, 5)
	}
	for g.Phase != PhaseComplete {
		checkOrCall(t, g)
	}
	assert.Equal(t, 3000, totalChips(g))
}

func TestDrawValidation(t *testing.T) {
	g := newTestGame(t, GameFiveCardDraw, Stakes{Ante: 5}, 38, 500, 500, 500)
	require.NoError(t, g.StartHand())
	checkOrCall(t, g)
	require.Equal(t, PhaseDraw, g.Phase)

	seat := g.PendingSeats()[0]
	err := g.HandleCommand(Command{Seat: seat, Action: DrawCards, Discards: []int{7}})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = g.HandleCommand(Command{Seat: seat, Action: DrawCards, Discards: []int{1, 1}})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	other := g.nextInHand(seat + 1)
	err = g.HandleCommand(Command{Seat: other, Action: DrawCards})
	assert.ErrorIs(t, err, ErrNotPlayersTurn)
}

func TestParseGameType(t *testing.T) {
	for gt, name := range gameNames {
		parsed, err := ParseGameType(name)
		require.NoError(t, err)
		assert.Equal(t, gt, parsed)
	}
	_, err := ParseGameType("canasta")
	assert.Error(t, err)
}
