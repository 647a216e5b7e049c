package game

import (
	"fmt"

	"github.com/cardhouse/dealerschoice/internal/eval"
)

// drawFlow runs five card draw and its wild-card cousins: ante, five down,
// bet, draw, bet, showdown.
type drawFlow struct {
	baseFlow
	wilds eval.WildRule
}

var drawOrder = []Phase{
	PhaseDealingHand,
	PhasePreDrawBetting,
	PhaseDraw,
	PhasePostDrawBetting,
	PhaseShowdown,
	PhaseComplete,
}

func (f *drawFlow) FirstPhase(g *Game) Phase {
	return PhaseCollectingAntes
}

func (f *drawFlow) Next(g *Game, current Phase) Phase {
	if current == PhaseCollectingAntes {
		return PhaseDealingHand
	}
	return linearNext(drawOrder, current)
}

func (f *drawFlow) Deal(g *Game, phase Phase) error {
	return g.dealEachHole(5)
}

func (f *drawFlow) OpenRound(g *Game, phase Phase) *BettingRound {
	return openNoLimitRound(g, phase)
}

func (f *drawFlow) WildRule(g *Game, p *Player) eval.WildRule {
	if f.wilds == nil {
		return eval.NoWilds
	}
	return f.wilds
}

func (f *drawFlow) Evaluate(g *Game, p *Player) eval.HandValue {
	return evaluateHigh(g, f, p)
}

// nextDrawSeat is the next live seat, clockwise from the dealer's left,
// that has not exchanged cards yet. All-in players still draw.
func nextDrawSeat(g *Game) int {
	n := len(g.Players)
	for i := 1; i <= n; i++ {
		seat := (g.DealerSeat + i) % n
		p := g.Players[seat]
		if p.InHand() && !p.drawDone {
			return seat
		}
	}
	return -1
}

func (f *drawFlow) HandleDecision(g *Game, cmd Command) error {
	if cmd.Action != DrawCards {
		return fmt.Errorf("%w: %s during draw", ErrActionNotAllowed, cmd.Action)
	}
	if cmd.Seat != nextDrawSeat(g) {
		return ErrNotPlayersTurn
	}
	p := g.Players[cmd.Seat]
	if err := g.replaceDiscards(p, cmd.Discards); err != nil {
		return err
	}
	p.drawDone = true
	return nil
}

func (f *drawFlow) AutoCommand(g *Game, seat int) (Command, bool) {
	if g.Phase != PhaseDraw || seat != nextDrawSeat(g) {
		return Command{}, false
	}
	// Stand pat.
	return Command{Seat: seat, Action: DrawCards}, true
}

func (f *drawFlow) PendingSeats(g *Game) []int {
	if seat := nextDrawSeat(g); seat >= 0 {
		return []int{seat}
	}
	return nil
}
