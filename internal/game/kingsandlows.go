package game

import (
	"fmt"

	"github.com/cardhouse/dealerschoice/internal/deck"
	"github.com/cardhouse/dealerschoice/internal/eval"
)

// kingsAndLowsFlow runs the drop-or-stay game: kings and each player's
// lowest cards are wild, there is no betting, and losers match the pot into
// the next hand. Antes are only collected when no pot carried over.
type kingsAndLowsFlow struct {
	baseFlow
}

func (f *kingsAndLowsFlow) FirstPhase(g *Game) Phase {
	if g.Pot.carryover > 0 {
		return PhaseDealingHand
	}
	return PhaseCollectingAntes
}

func (f *kingsAndLowsFlow) Next(g *Game, current Phase) Phase {
	switch current {
	case PhaseCollectingAntes:
		return PhaseDealingHand
	case PhaseDealingHand:
		return PhaseDropOrStay
	case PhaseDropOrStay:
		return f.resolveDecisions(g)
	case PhaseDraw, PhasePlayerVsDeck:
		return PhaseShowdown
	}
	return PhaseComplete
}

// resolveDecisions reveals the simultaneous drop-or-stay choices and
// branches: no stayers rolls the pot over, a lone stayer plays the deck,
// two or more draw and show down.
func (f *kingsAndLowsFlow) resolveDecisions(g *Game) Phase {
	stayers := 0
	for _, p := range g.Players {
		if !p.InHand() {
			continue
		}
		if p.Decision == DecisionStay {
			stayers++
		} else {
			p.Folded = true
			p.FoldedIn = PhaseDropOrStay
		}
	}
	switch stayers {
	case 0:
		g.Carryover += g.Pot.Total
		g.Pot.Total = 0
		g.log.Info("all players dropped, pot carries over",
			"hand", g.HandID, "carryover", g.Carryover)
		return PhaseComplete
	case 1:
		return PhasePlayerVsDeck
	default:
		return PhaseDraw
	}
}

func (f *kingsAndLowsFlow) Deal(g *Game, phase Phase) error {
	return g.dealEachHole(5)
}

func (f *kingsAndLowsFlow) OpenRound(g *Game, phase Phase) *BettingRound {
	return nil
}

func (f *kingsAndLowsFlow) WildRule(g *Game, p *Player) eval.WildRule {
	return eval.WithLowestWild(eval.WildRanks(deck.King))
}

func (f *kingsAndLowsFlow) Evaluate(g *Game, p *Player) eval.HandValue {
	return evaluateHigh(g, f, p)
}

func (f *kingsAndLowsFlow) HandleDecision(g *Game, cmd Command) error {
	switch g.Phase {
	case PhaseDropOrStay:
		p := g.Players[cmd.Seat]
		if !p.InHand() || p.Decision != DecisionPending {
			return ErrNotPlayersTurn
		}
		switch cmd.Action {
		case Drop:
			p.Decision = DecisionDrop
		case Stay:
			// Staying risks matching the pot, so the stack must cover it.
			if p.Chips < g.Pot.Total {
				return fmt.Errorf("%w: staying requires %d to cover the pot", ErrInsufficientChips, g.Pot.Total)
			}
			p.Decision = DecisionStay
		default:
			return fmt.Errorf("%w: %s during drop-or-stay", ErrActionNotAllowed, cmd.Action)
		}
		return nil

	case PhaseDraw:
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

	case PhasePlayerVsDeck:
		if cmd.Action != DeckDraw {
			return fmt.Errorf("%w: %s during player-versus-deck", ErrActionNotAllowed, cmd.Action)
		}
		if cmd.Seat != g.nextInHand(0) || g.deckDrawDone {
			return ErrNotPlayersTurn
		}
		p := g.Players[cmd.Seat]
		if len(cmd.Discards) > 0 {
			if err := g.replaceDiscards(p, cmd.Discards); err != nil {
				return err
			}
		}
		p.drawDone = true
		g.DeckHand = g.Deck.DealN(5)
		if len(g.DeckHand) < 5 {
			return fmt.Errorf("%w: dealing the deck hand", ErrDeckExhausted)
		}
		g.deckDrawDone = true
		return nil
	}
	return ErrNotSupported
}

func (f *kingsAndLowsFlow) AutoCommand(g *Game, seat int) (Command, bool) {
	switch g.Phase {
	case PhaseDropOrStay:
		p := g.Players[seat]
		if p.InHand() && p.Decision == DecisionPending {
			return Command{Seat: seat, Action: Drop}, true
		}
	case PhaseDraw:
		if seat == nextDrawSeat(g) {
			return Command{Seat: seat, Action: DrawCards}, true
		}
	case PhasePlayerVsDeck:
		if !g.deckDrawDone && seat == g.nextInHand(0) {
			return Command{Seat: seat, Action: DeckDraw}, true
		}
	}
	return Command{}, false
}

func (f *kingsAndLowsFlow) PendingSeats(g *Game) []int {
	switch g.Phase {
	case PhaseDropOrStay:
		var seats []int
		for _, p := range g.Players {
			if p.InHand() && p.Decision == DecisionPending {
				seats = append(seats, p.Seat)
			}
		}
		return seats
	case PhaseDraw:
		if seat := nextDrawSeat(g); seat >= 0 {
			return []int{seat}
		}
	case PhasePlayerVsDeck:
		if !g.deckDrawDone {
			return []int{g.nextInHand(0)}
		}
	}
	return nil
}

// Conclude settles the pot-matching rule: every stayer who did not win
// matches the pot into the next hand's carryover, and an unbeaten deck
// rolls the whole pot over too.
func (f *kingsAndLowsFlow) Conclude(g *Game) {
	if g.Result == nil || g.Result.settled {
		return
	}
	g.Result.settled = true

	pot := g.Result.TotalPot
	if g.Result.DeckWins {
		g.Carryover += pot
	}
	for _, p := range g.Players {
		if !p.InHand() || p.Decision != DecisionStay {
			continue
		}
		if g.Result.Winnings[p.Seat] > 0 {
			continue
		}
		matched := min(pot, p.Chips)
		p.Chips -= matched
		g.Carryover += matched
		g.log.Info("loser matches pot",
			"hand", g.HandID, "seat", p.Seat, "matched", matched, "carryover", g.Carryover)
	}
}
