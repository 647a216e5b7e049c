package eval

import (
	"github.com/cardhouse/dealerschoice/internal/deck"
)

// Evaluate ranks a set of 5 or more cards, selecting the best five-card
// subset. Wild cards substitute for whatever maximizes the resulting hand.
func Evaluate(cards []deck.Card, rule WildRule) HandValue {
	if rule == nil {
		rule = NoWilds
	}
	wild := rule(cards)

	best := HandValue{}
	forEachFive(len(cards), func(idx [5]int) {
		sub := [5]deck.Card{}
		subWild := [5]bool{}
		for i, j := range idx {
			sub[i] = cards[j]
			subWild[i] = wild[j]
		}
		if v := evaluate5(sub, subWild); v.Strength > best.Strength {
			best = v
		}
	})
	return best
}

// EvaluateOmaha ranks an Omaha holding: the best hand must use exactly two
// hole cards and exactly three board cards. Combinations violating that
// structure are never considered, even if they would score higher.
func EvaluateOmaha(hole, board []deck.Card, rule WildRule) HandValue {
	if rule == nil {
		rule = NoWilds
	}

	best := HandValue{}
	for a := 0; a < len(hole); a++ {
		for b := a + 1; b < len(hole); b++ {
			forEachThree(len(board), func(x, y, z int) {
				five := [5]deck.Card{hole[a], hole[b], board[x], board[y], board[z]}
				wild := rule(five[:])
				var w [5]bool
				copy(w[:], wild)
				if v := evaluate5(five, w); v.Strength > best.Strength {
					best = v
				}
			})
		}
	}
	return best
}

// evaluate5 ranks exactly five cards, enumerating substitutions for wilds.
//
// Suits only matter for flushes, so it is enough to try each rank assignment
// twice: once with every wild in the naturals' common suit (when one exists,
// enabling flushes and straight flushes) and once with every wild off-suit.
// A wild may duplicate a natural card, which is how five of a kind arises.
func evaluate5(cards [5]deck.Card, wild [5]bool) HandValue {
	naturals := make([]deck.Card, 0, 5)
	wildCount := 0
	for i, c := range cards {
		if wild[i] {
			wildCount++
		} else {
			naturals = append(naturals, c)
		}
	}

	if wildCount == 0 {
		return score5(cards[:])
	}
	if wildCount == 5 {
		return packValue(FiveOfAKind, deck.Ace)
	}

	flushSuit := naturals[0].Suit
	flushPossible := true
	for _, c := range naturals {
		if c.Suit != flushSuit {
			flushPossible = false
			break
		}
	}
	offSuit := deck.Clubs
	if flushSuit == deck.Clubs {
		offSuit = deck.Diamonds
	}

	best := HandValue{}
	five := make([]deck.Card, 5)
	copy(five, naturals)

	// Rank assignments are order-insensitive, so enumerate non-decreasing.
	var assign func(i int, from deck.Rank, suit deck.Suit)
	assign = func(i int, from deck.Rank, suit deck.Suit) {
		if i == wildCount {
			if v := score5(five); v.Strength > best.Strength {
				best = v
			}
			return
		}
		for r := from; r <= deck.Ace; r++ {
			five[len(naturals)+i] = deck.NewCard(suit, r)
			assign(i+1, r, suit)
		}
	}

	if flushPossible {
		assign(0, deck.Two, flushSuit)
	}
	assign(0, deck.Two, offSuit)
	return best
}

// forEachFive visits every 5-element index combination of [0, n)
func forEachFive(n int, fn func([5]int)) {
	if n < 5 {
		return
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						fn([5]int{a, b, c, d, e})
					}
				}
			}
		}
	}
}

// forEachThree visits every 3-element index combination of [0, n)
func forEachThree(n int, fn func(x, y, z int)) {
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			for z := y + 1; z < n; z++ {
				fn(x, y, z)
			}
		}
	}
}
