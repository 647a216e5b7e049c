package game

import (
	"github.com/cardhouse/dealerschoice/internal/eval"
)

// communityFlow runs Texas Hold'em and Omaha: blinds, four streets, shared
// board.
type communityFlow struct {
	baseFlow
	omaha bool
}

var communityOrder = []Phase{
	PhaseDealingHole,
	PhasePreflopBetting,
	PhaseFlop,
	PhaseFlopBetting,
	PhaseTurn,
	PhaseTurnBetting,
	PhaseRiver,
	PhaseRiverBetting,
	PhaseShowdown,
	PhaseComplete,
}

func (f *communityFlow) FirstPhase(g *Game) Phase {
	if g.Stakes.Ante > 0 {
		return PhaseCollectingAntes
	}
	return PhaseDealingHole
}

func (f *communityFlow) Next(g *Game, current Phase) Phase {
	if current == PhaseCollectingAntes {
		return PhaseDealingHole
	}
	return linearNext(communityOrder, current)
}

func (f *communityFlow) Deal(g *Game, phase Phase) error {
	switch phase {
	case PhaseDealingHole:
		return g.dealEachHole(g.Rules.HoleCards)
	case PhaseFlop:
		return g.dealCommunity(3)
	case PhaseTurn, PhaseRiver:
		return g.dealCommunity(1)
	}
	return nil
}

func (f *communityFlow) OpenRound(g *Game, phase Phase) *BettingRound {
	if phase != PhasePreflopBetting {
		return openNoLimitRound(g, phase)
	}

	// Heads-up the dealer posts the small blind and acts first.
	sb := g.nextInHand(g.DealerSeat + 1)
	bb := g.nextInHand(sb + 1)
	if g.countInHand() == 2 {
		sb, bb = bb, sb
	}
	g.post(g.Players[sb], g.Stakes.SmallBlind)
	g.post(g.Players[bb], g.Stakes.BigBlind)

	first := g.nextInHand(bb + 1)
	return NewBettingRound(g.Players, phase, g.Stakes.MinBet, first,
		WithOpeningBet(g.Stakes.BigBlind, g.Stakes.BigBlind))
}

func (f *communityFlow) Evaluate(g *Game, p *Player) eval.HandValue {
	if f.omaha {
		return eval.EvaluateOmaha(p.Hole, g.Board, f.WildRule(g, p))
	}
	return evaluateHigh(g, f, p)
}

func (f *communityFlow) HandleDecision(g *Game, cmd Command) error {
	return ErrNotSupported
}

func (f *communityFlow) AutoCommand(g *Game, seat int) (Command, bool) {
	return Command{}, false
}

func (f *communityFlow) PendingSeats(g *Game) []int {
	return nil
}
