// Package eval ranks poker hands into totally ordered strength values,
// including the wild-card rules used by the dealer's choice variants.
package eval

import (
	"sort"

	"github.com/cardhouse/dealerschoice/internal/deck"
)

// Category is the hand category, ordered weakest to strongest.
// Five of a kind is only reachable in wild-card games.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	FiveOfAKind
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case FiveOfAKind:
		return "Five of a Kind"
	default:
		return "Unknown"
	}
}

// HandValue is a comparable hand strength. Strength packs the category and
// five tie-break ranks into a single ordered integer; equal Strength values
// are a true tie and are never broken on suit.
type HandValue struct {
	Category Category
	Strength uint32
}

// Compare returns -1, 0 or 1 as v is weaker than, equal to, or stronger than o
func (v HandValue) Compare(o HandValue) int {
	switch {
	case v.Strength < o.Strength:
		return -1
	case v.Strength > o.Strength:
		return 1
	default:
		return 0
	}
}

// String returns the category name for display and hand-history records
func (v HandValue) String() string {
	return v.Category.String()
}

// packValue builds a Strength from a category and up to five tie-break ranks,
// most significant first.
func packValue(cat Category, ranks ...deck.Rank) HandValue {
	s := uint32(cat) << 20
	for i := 0; i < 5; i++ {
		var r deck.Rank
		if i < len(ranks) {
			r = ranks[i]
		}
		s |= uint32(r) << (16 - 4*i)
	}
	return HandValue{Category: cat, Strength: s}
}

// score5 ranks exactly five concrete cards with no wilds.
func score5(cards []deck.Card) HandValue {
	ranks := make([]deck.Rank, 5)
	flush := true
	for i, c := range cards {
		ranks[i] = c.Rank
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	counts := make(map[deck.Rank]int, 5)
	for _, r := range ranks {
		counts[r]++
	}

	straightHigh, isStraight := straightHighRank(counts)

	switch len(counts) {
	case 1:
		// Only possible with wild substitution producing duplicates.
		return packValue(FiveOfAKind, ranks[0])
	case 2:
		// Quads or full house.
		for r, n := range counts {
			if n == 4 {
				return packValue(FourOfAKind, r, otherRank(counts, r))
			}
		}
		var trip, pair deck.Rank
		for r, n := range counts {
			if n == 3 {
				trip = r
			} else {
				pair = r
			}
		}
		return packValue(FullHouse, trip, pair)
	case 3:
		// Trips or two pair.
		for r, n := range counts {
			if n == 3 {
				kickers := kickersExcluding(ranks, r)
				return packValue(ThreeOfAKind, r, kickers[0], kickers[1])
			}
		}
		var pairs []deck.Rank
		var kicker deck.Rank
		for r, n := range counts {
			if n == 2 {
				pairs = append(pairs, r)
			} else {
				kicker = r
			}
		}
		if pairs[0] < pairs[1] {
			pairs[0], pairs[1] = pairs[1], pairs[0]
		}
		return packValue(TwoPair, pairs[0], pairs[1], kicker)
	case 4:
		for r, n := range counts {
			if n == 2 {
				kickers := kickersExcluding(ranks, r)
				return packValue(Pair, r, kickers[0], kickers[1], kickers[2])
			}
		}
	}

	// Five distinct ranks: straight flush, flush, straight, or high card.
	switch {
	case isStraight && flush:
		return packValue(StraightFlush, straightHigh)
	case flush:
		return packValue(Flush, ranks[0], ranks[1], ranks[2], ranks[3], ranks[4])
	case isStraight:
		return packValue(Straight, straightHigh)
	default:
		return packValue(HighCard, ranks[0], ranks[1], ranks[2], ranks[3], ranks[4])
	}
}

// straightHighRank reports whether the five distinct ranks form a straight
// and its high card, treating A-2-3-4-5 as a five-high straight.
func straightHighRank(counts map[deck.Rank]int) (deck.Rank, bool) {
	if len(counts) != 5 {
		return 0, false
	}
	var lo, hi deck.Rank = deck.Ace, deck.Two
	for r := range counts {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	if hi-lo == 4 {
		return hi, true
	}
	// Wheel: A,5,4,3,2
	if counts[deck.Ace] == 1 && counts[deck.Five] == 1 && counts[deck.Four] == 1 &&
		counts[deck.Three] == 1 && counts[deck.Two] == 1 {
		return deck.Five, true
	}
	return 0, false
}

func otherRank(counts map[deck.Rank]int, not deck.Rank) deck.Rank {
	for r := range counts {
		if r != not {
			return r
		}
	}
	return 0
}

func kickersExcluding(sorted []deck.Rank, not deck.Rank) []deck.Rank {
	out := make([]deck.Rank, 0, 4)
	for _, r := range sorted {
		if r != not {
			out = append(out, r)
		}
	}
	return out
}
