package eval

import "github.com/cardhouse/dealerschoice/internal/deck"

// WildRule decides which of a player's cards are wild. It is evaluated once
// per hand, over the full set of cards being scored, before any best-five
// selection happens.
type WildRule func(cards []deck.Card) []bool

// NoWilds is the rule for straight variants
func NoWilds(cards []deck.Card) []bool {
	return make([]bool, len(cards))
}

// WildRanks marks every card of the given ranks wild (e.g. Baseball's 3s and 9s)
func WildRanks(ranks ...deck.Rank) WildRule {
	set := make(map[deck.Rank]bool, len(ranks))
	for _, r := range ranks {
		set[r] = true
	}
	return func(cards []deck.Card) []bool {
		wild := make([]bool, len(cards))
		for i, c := range cards {
			wild[i] = set[c.Rank]
		}
		return wild
	}
}

// WildCards marks specific cards wild (e.g. the king of diamonds)
func WildCards(specific ...deck.Card) WildRule {
	return func(cards []deck.Card) []bool {
		wild := make([]bool, len(cards))
		for i, c := range cards {
			for _, s := range specific {
				if c == s {
					wild[i] = true
					break
				}
			}
		}
		return wild
	}
}

// Combine unions several wild rules
func Combine(rules ...WildRule) WildRule {
	return func(cards []deck.Card) []bool {
		wild := make([]bool, len(cards))
		for _, rule := range rules {
			for i, w := range rule(cards) {
				if w {
					wild[i] = true
				}
			}
		}
		return wild
	}
}

// WithLowestWild extends a base rule so that, after the base wilds are
// determined, every card of the holder's single lowest non-wild rank is also
// wild. This is the Kings and Lows rule: kings wild plus each player's low card.
func WithLowestWild(base WildRule) WildRule {
	return func(cards []deck.Card) []bool {
		wild := base(cards)

		lowest := deck.Rank(0)
		for i, c := range cards {
			if wild[i] {
				continue
			}
			if lowest == 0 || c.Rank < lowest {
				lowest = c.Rank
			}
		}
		if lowest == 0 {
			return wild
		}
		for i, c := range cards {
			if !wild[i] && c.Rank == lowest {
				wild[i] = true
			}
		}
		return wild
	}
}
