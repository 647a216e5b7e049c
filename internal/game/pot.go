package game

import (
	"sort"
)

// Pot is one award tier. Eligible lists the seats that can win it,
// in seat order.
type Pot struct {
	Amount   int
	Eligible []int
}

// PotManager accumulates chips bet during a hand and splits them into main
// and side pots at showdown. Carryover from a previous hand (Kings and Lows
// pot matching) seeds the main pot without counting toward any player's
// contribution.
type PotManager struct {
	Total     int
	carryover int
}

func NewPotManager(carryover int) *PotManager {
	return &PotManager{Total: carryover, carryover: carryover}
}

// CollectBets sweeps the per-round bets into the pot at the end of a betting
// round and zeroes them. TotalBet is untouched; it is the basis for side pot
// tiers.
func (pm *PotManager) CollectBets(players []*Player) {
	for _, p := range players {
		pm.Total += p.Bet
		p.Bet = 0
	}
}

// Pots computes the award tiers. Every distinct total contribution among
// players still in the hand opens a tier; folded players' chips fall into
// whichever tiers their contribution reaches. The sum of all tier amounts
// equals Total.
func (pm *PotManager) Pots(players []*Player) []Pot {
	levelSet := make(map[int]struct{})
	for _, p := range players {
		if p.InHand() && p.TotalBet > 0 {
			levelSet[p.TotalBet] = struct{}{}
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	if len(levels) == 0 {
		// Ante-free hand riding on carryover alone.
		var eligible []int
		for _, p := range players {
			if p.InHand() {
				eligible = append(eligible, p.Seat)
			}
		}
		if pm.Total == 0 || len(eligible) == 0 {
			return nil
		}
		return []Pot{{Amount: pm.Total, Eligible: eligible}}
	}

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for i, level := range levels {
		pot := Pot{}
		for _, p := range players {
			contrib := min(p.TotalBet, level) - min(p.TotalBet, prev)
			if contrib > 0 {
				pot.Amount += contrib
			}
			if p.InHand() && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if i == len(levels)-1 {
			// Folded chips above the deepest live stack still belong in
			// the last pot.
			for _, p := range players {
				if !p.InHand() && p.TotalBet > level {
					pot.Amount += p.TotalBet - level
				}
			}
		}
		pots = append(pots, pot)
		prev = level
	}
	pots[0].Amount += pm.carryover
	return pots
}
