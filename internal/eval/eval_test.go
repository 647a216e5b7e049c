package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/dealerschoice/internal/deck"
)

// c is a test helper for terse card construction
func c(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(s, r)
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []deck.Card
		want  Category
	}{
		{
			name:  "high card",
			cards: []deck.Card{c(deck.Ace, deck.Spades), c(deck.Ten, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)},
			want:  HighCard,
		},
		{
			name:  "pair",
			cards: []deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)},
			want:  Pair,
		},
		{
			name:  "two pair",
			cards: []deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Five, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)},
			want:  TwoPair,
		},
		{
			name:  "trips",
			cards: []deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Nine, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)},
			want:  ThreeOfAKind,
		},
		{
			name:  "straight",
			cards: []deck.Card{c(deck.Nine, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Six, deck.Diamonds), c(deck.Five, deck.Spades)},
			want:  Straight,
		},
		{
			name:  "wheel straight",
			cards: []deck.Card{c(deck.Ace, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Three, deck.Clubs), c(deck.Four, deck.Diamonds), c(deck.Five, deck.Spades)},
			want:  Straight,
		},
		{
			name:  "flush",
			cards: []deck.Card{c(deck.King, deck.Hearts), c(deck.Ten, deck.Hearts), c(deck.Seven, deck.Hearts), c(deck.Five, deck.Hearts), c(deck.Two, deck.Hearts)},
			want:  Flush,
		},
		{
			name:  "full house",
			cards: []deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Nine, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Five, deck.Spades)},
			want:  FullHouse,
		},
		{
			name:  "quads",
			cards: []deck.Card{c(deck.Nine, deck.Spades), c(deck.Nine, deck.Hearts), c(deck.Nine, deck.Clubs), c(deck.Nine, deck.Diamonds), c(deck.Five, deck.Spades)},
			want:  FourOfAKind,
		},
		{
			name:  "straight flush",
			cards: []deck.Card{c(deck.Nine, deck.Clubs), c(deck.Eight, deck.Clubs), c(deck.Seven, deck.Clubs), c(deck.Six, deck.Clubs), c(deck.Five, deck.Clubs)},
			want:  StraightFlush,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := Evaluate(tc.cards, NoWilds)
			assert.Equal(t, tc.want, v.Category)
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()

	flush := Evaluate([]deck.Card{c(deck.King, deck.Hearts), c(deck.Ten, deck.Hearts), c(deck.Seven, deck.Hearts), c(deck.Five, deck.Hearts), c(deck.Two, deck.Hearts)}, nil)
	straight := Evaluate([]deck.Card{c(deck.Nine, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Six, deck.Diamonds), c(deck.Five, deck.Spades)}, nil)
	wheel := Evaluate([]deck.Card{c(deck.Ace, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Three, deck.Clubs), c(deck.Four, deck.Diamonds), c(deck.Five, deck.Spades)}, nil)

	assert.Equal(t, 1, flush.Compare(straight))
	assert.Equal(t, -1, wheel.Compare(straight), "five-high straight loses to nine-high")

	// Higher pair beats lower pair.
	aces := Evaluate([]deck.Card{c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)}, nil)
	kings := Evaluate([]deck.Card{c(deck.King, deck.Spades), c(deck.King, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)}, nil)
	assert.Equal(t, 1, aces.Compare(kings))

	// Same ranks in different suits are a true tie.
	a := Evaluate([]deck.Card{c(deck.King, deck.Spades), c(deck.King, deck.Hearts), c(deck.Seven, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Two, deck.Spades)}, nil)
	b := Evaluate([]deck.Card{c(deck.King, deck.Diamonds), c(deck.King, deck.Clubs), c(deck.Seven, deck.Hearts), c(deck.Five, deck.Spades), c(deck.Two, deck.Diamonds)}, nil)
	assert.Equal(t, 0, a.Compare(b))
}

func TestEvaluateBestFiveOfSeven(t *testing.T) {
	t.Parallel()

	// Seven cards containing a buried flush.
	cards := []deck.Card{
		c(deck.Ace, deck.Spades), c(deck.King, deck.Spades), c(deck.Nine, deck.Spades),
		c(deck.Four, deck.Spades), c(deck.Two, deck.Spades),
		c(deck.Ace, deck.Hearts), c(deck.Ace, deck.Diamonds),
	}
	v := Evaluate(cards, NoWilds)
	assert.Equal(t, Flush, v.Category, "flush outranks trip aces")
}

func TestBaseballWilds(t *testing.T) {
	t.Parallel()

	// 3s and 9s are wild: a pair of sevens plus two wilds makes quads.
	cards := []deck.Card{
		c(deck.Three, deck.Clubs), c(deck.Nine, deck.Diamonds),
		c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts),
		c(deck.Two, deck.Clubs), c(deck.Five, deck.Diamonds), c(deck.Jack, deck.Spades),
	}
	v := Evaluate(cards, WildRanks(deck.Three, deck.Nine))
	assert.Equal(t, FourOfAKind, v.Category)
}

func TestKingsAndLowsWilds(t *testing.T) {
	t.Parallel()

	rule := WithLowestWild(WildRanks(deck.King))

	// Two kings wild, the four is the lowest non-wild so it is wild too:
	// three wilds plus a pair of nines makes five nines.
	cards := []deck.Card{
		c(deck.King, deck.Spades), c(deck.King, deck.Diamonds),
		c(deck.Nine, deck.Clubs), c(deck.Nine, deck.Hearts), c(deck.Four, deck.Diamonds),
	}
	v := Evaluate(cards, rule)
	assert.Equal(t, FiveOfAKind, v.Category)

	// Both cards of the lowest rank go wild.
	cards = []deck.Card{
		c(deck.Two, deck.Clubs), c(deck.Two, deck.Hearts),
		c(deck.Ten, deck.Spades), c(deck.Jack, deck.Spades), c(deck.Queen, deck.Spades),
	}
	wild := rule(cards)
	assert.Equal(t, []bool{true, true, false, false, false}, wild)
}

func TestManWithTheAxeWilds(t *testing.T) {
	t.Parallel()

	rule := Combine(
		WildRanks(deck.Two, deck.Jack),
		WildCards(c(deck.King, deck.Diamonds)),
	)

	wild := rule([]deck.Card{
		c(deck.Two, deck.Spades), c(deck.Jack, deck.Hearts),
		c(deck.King, deck.Diamonds), c(deck.King, deck.Spades), c(deck.Seven, deck.Clubs),
	})
	assert.Equal(t, []bool{true, true, true, false, false}, wild)
}

func TestAllWildHand(t *testing.T) {
	t.Parallel()

	// Four kings plus a lone low card: all five cards wild under Kings and Lows.
	rule := WithLowestWild(WildRanks(deck.King))
	cards := []deck.Card{
		c(deck.King, deck.Spades), c(deck.King, deck.Hearts),
		c(deck.King, deck.Diamonds), c(deck.King, deck.Clubs), c(deck.Six, deck.Spades),
	}
	v := Evaluate(cards, rule)
	require.Equal(t, FiveOfAKind, v.Category)
	assert.Equal(t, packValue(FiveOfAKind, deck.Ace).Strength, v.Strength)
}

func TestWildStraightFlush(t *testing.T) {
	t.Parallel()

	// Four clubs to a straight flush with one wild filling the gap.
	cards := []deck.Card{
		c(deck.Nine, deck.Clubs), c(deck.Eight, deck.Clubs),
		c(deck.Six, deck.Clubs), c(deck.Five, deck.Clubs), c(deck.Three, deck.Diamonds),
	}
	v := Evaluate(cards, WildRanks(deck.Three))
	assert.Equal(t, StraightFlush, v.Category)
}

func TestEvaluateOmahaConstraint(t *testing.T) {
	t.Parallel()

	// One spade in the hole, four on the board. Unconstrained evaluation
	// would find a flush; Omaha's exactly-2-hole/exactly-3-board rule
	// forbids it.
	hole := []deck.Card{
		c(deck.Ace, deck.Spades), c(deck.Two, deck.Diamonds),
		c(deck.Three, deck.Clubs), c(deck.Four, deck.Hearts),
	}
	board := []deck.Card{
		c(deck.King, deck.Spades), c(deck.Queen, deck.Spades),
		c(deck.Jack, deck.Spades), c(deck.Ten, deck.Spades), c(deck.Five, deck.Diamonds),
	}

	unconstrained := Evaluate(append(append([]deck.Card{}, hole...), board...), NoWilds)
	require.Equal(t, StraightFlush, unconstrained.Category)

	v := EvaluateOmaha(hole, board, NoWilds)
	assert.Equal(t, HighCard, v.Category, "no two-hole combination improves on ace high")
}

func TestEvaluateOmahaUsesTwoHoleCards(t *testing.T) {
	t.Parallel()

	// Board pairs are only playable through exactly three board cards.
	hole := []deck.Card{
		c(deck.Ace, deck.Spades), c(deck.Ace, deck.Hearts),
		c(deck.Seven, deck.Clubs), c(deck.Six, deck.Diamonds),
	}
	board := []deck.Card{
		c(deck.Ace, deck.Diamonds), c(deck.King, deck.Clubs),
		c(deck.Nine, deck.Hearts), c(deck.Four, deck.Spades), c(deck.Two, deck.Clubs),
	}
	v := EvaluateOmaha(hole, board, NoWilds)
	assert.Equal(t, ThreeOfAKind, v.Category, "pocket aces plus the board ace")
}
