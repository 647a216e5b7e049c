package game

import (
	"fmt"

	"github.com/cardhouse/dealerschoice/internal/deck"
	"github.com/cardhouse/dealerschoice/internal/eval"
)

// PotAward records how one pot was split
type PotAward struct {
	Amount  int
	Winners []int
	Shares  map[int]int
}

// ShowdownHand is one revealed hand and its evaluated value
type ShowdownHand struct {
	Seat  int
	Cards []deck.Card
	Value eval.HandValue
}

// HandResult is the outcome of a completed hand
type HandResult struct {
	TotalPot int
	Pots     []PotAward
	Hands    []ShowdownHand
	Winnings map[int]int

	// Player-versus-deck outcome, when one player stayed alone.
	DeckHand  []deck.Card
	DeckValue eval.HandValue
	DeckWins  bool

	// FoldWin means everyone else folded and no cards were shown
	FoldWin bool

	settled bool
}

// resolve runs the showdown: evaluate live hands, split each pot among its
// best eligible hands, and pay the winners. Remainder chips go one at a
// time clockwise from the dealer's left.
func (g *Game) resolve() error {
	result := &HandResult{
		TotalPot: g.Pot.Total,
		Winnings: make(map[int]int),
	}

	var live []*Player
	for _, p := range g.Players {
		if p.InHand() {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return fmt.Errorf("%w: showdown with no live hands", ErrInvariant)
	}

	pots := g.Pot.Pots(g.Players)

	switch {
	case len(live) == 1 && g.DeckHand == nil:
		// Uncontested: the last player takes everything unshown.
		result.FoldWin = true
		for _, pot := range pots {
			result.Pots = append(result.Pots, PotAward{
				Amount:  pot.Amount,
				Winners: []int{live[0].Seat},
				Shares:  map[int]int{live[0].Seat: pot.Amount},
			})
		}

	case g.DeckHand != nil:
		lone := live[0]
		pv := g.handler.Evaluate(g, lone)
		dv := eval.Evaluate(g.DeckHand, g.handler.WildRule(g, nil))
		result.Hands = append(result.Hands, ShowdownHand{Seat: lone.Seat, Cards: lone.Cards(), Value: pv})
		result.DeckHand = g.DeckHand
		result.DeckValue = dv

		// The deck wins ties.
		if pv.Compare(dv) > 0 {
			for _, pot := range pots {
				result.Pots = append(result.Pots, PotAward{
					Amount:  pot.Amount,
					Winners: []int{lone.Seat},
					Shares:  map[int]int{lone.Seat: pot.Amount},
				})
			}
		} else {
			result.DeckWins = true
		}

	default:
		values := make(map[int]eval.HandValue, len(live))
		for _, p := range live {
			v := g.handler.Evaluate(g, p)
			values[p.Seat] = v
			result.Hands = append(result.Hands, ShowdownHand{Seat: p.Seat, Cards: p.Cards(), Value: v})
		}
		for _, pot := range pots {
			winners := bestSeats(pot.Eligible, values)
			if len(winners) == 0 {
				return fmt.Errorf("%w: pot with no eligible winner", ErrInvariant)
			}
			result.Pots = append(result.Pots, PotAward{
				Amount:  pot.Amount,
				Winners: winners,
				Shares:  g.splitPot(pot.Amount, winners),
			})
		}
	}

	awarded := 0
	for _, pa := range result.Pots {
		for seat, amt := range pa.Shares {
			g.Players[seat].Chips += amt
			result.Winnings[seat] += amt
			awarded += amt
		}
	}
	if !result.DeckWins && awarded != result.TotalPot {
		return fmt.Errorf("%w: awarded %d of %d pot chips", ErrInvariant, awarded, result.TotalPot)
	}
	g.Pot.Total = 0

	g.Result = result
	g.log.Info("hand resolved",
		"hand", g.HandID, "pot", result.TotalPot,
		"foldWin", result.FoldWin, "deckWins", result.DeckWins)
	return nil
}

// bestSeats picks the eligible seats holding the top hand value
func bestSeats(eligible []int, values map[int]eval.HandValue) []int {
	var winners []int
	var best eval.HandValue
	for _, seat := range eligible {
		v, ok := values[seat]
		if !ok {
			continue
		}
		switch {
		case len(winners) == 0 || v.Compare(best) > 0:
			winners = []int{seat}
			best = v
		case v.Compare(best) == 0:
			winners = append(winners, seat)
		}
	}
	return winners
}

// splitPot divides amount equally; leftover chips land on the winners
// closest to the dealer's left, one each, so splits are deterministic.
func (g *Game) splitPot(amount int, winners []int) map[int]int {
	share := amount / len(winners)
	remainder := amount % len(winners)

	isWinner := make(map[int]bool, len(winners))
	shares := make(map[int]int, len(winners))
	for _, seat := range winners {
		isWinner[seat] = true
		shares[seat] = share
	}

	n := len(g.Players)
	for i := 1; i <= n && remainder > 0; i++ {
		seat := (g.DealerSeat + i) % n
		if isWinner[seat] {
			shares[seat]++
			remainder--
		}
	}
	return shares
}
