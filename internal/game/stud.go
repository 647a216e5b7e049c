package game

import (
	"fmt"

	"github.com/cardhouse/dealerschoice/internal/deck"
	"github.com/cardhouse/dealerschoice/internal/eval"
)

// studFlow runs seven card stud and its wild variants: antes, a bring-in on
// third street, fixed-limit betting, two down cards then four up then one
// down.
type studFlow struct {
	baseFlow
	baseball    bool
	followQueen bool
}

var studOrder = []Phase{
	PhaseThirdStreet,
	PhaseThirdStreetBetting,
	PhaseFourthStreet,
	PhaseFourthStreetBetting,
	PhaseFifthStreet,
	PhaseFifthStreetBetting,
	PhaseSixthStreet,
	PhaseSixthStreetBetting,
	PhaseSeventhStreet,
	PhaseSeventhStreetBetting,
	PhaseShowdown,
	PhaseComplete,
}

func (f *studFlow) FirstPhase(g *Game) Phase {
	return PhaseCollectingAntes
}

func (f *studFlow) Next(g *Game, current Phase) Phase {
	switch current {
	case PhaseCollectingAntes:
		return PhaseThirdStreet
	case PhaseBuyCardOffer:
		if len(g.pendingBuys) > 0 {
			g.buySeat = g.pendingBuys[0]
			g.pendingBuys = g.pendingBuys[1:]
			return PhaseBuyCardOffer
		}
		return g.resumePhase
	}
	next := linearNext(studOrder, current)
	if f.baseball && len(g.pendingBuys) > 0 {
		g.resumePhase = next
		g.buySeat = g.pendingBuys[0]
		g.pendingBuys = g.pendingBuys[1:]
		return PhaseBuyCardOffer
	}
	return next
}

func (f *studFlow) Deal(g *Game, phase Phase) error {
	switch phase {
	case PhaseThirdStreet:
		if err := g.dealEachHole(2); err != nil {
			return err
		}
		return f.dealUpStreet(g)
	case PhaseFourthStreet, PhaseFifthStreet, PhaseSixthStreet:
		return f.dealUpStreet(g)
	case PhaseSeventhStreet:
		return g.dealEachDown()
	}
	return nil
}

// dealUpStreet deals the face-up round and, in Baseball, queues a buy offer
// for every four dealt face up.
func (f *studFlow) dealUpStreet(g *Game) error {
	if err := g.dealEachUp(); err != nil {
		return err
	}
	if !f.baseball {
		return nil
	}
	for _, seat := range g.dealSeats() {
		p := g.Players[seat]
		if len(p.Up) > 0 && p.Up[len(p.Up)-1].Rank == deck.Four {
			g.pendingBuys = append(g.pendingBuys, seat)
		}
	}
	return nil
}

// OpenRound opens a fixed-limit street: small bet through fourth street,
// big bet from fifth on, with the bring-in forcing third street open.
func (f *studFlow) OpenRound(g *Game, phase Phase) *BettingRound {
	bet := g.Stakes.SmallBet
	if phase != PhaseThirdStreetBetting && phase != PhaseFourthStreetBetting {
		bet = g.Stakes.BigBet
	}

	if phase == PhaseThirdStreetBetting {
		seat := g.bringInSeat()
		g.post(g.Players[seat], g.Stakes.BringIn)
		first := g.nextInHand(seat + 1)
		return NewBettingRound(g.Players, phase, bet, first,
			WithFixedLimit(bet, g.Stakes.MaxRaises),
			WithOpeningBet(g.Stakes.BringIn, 0))
	}

	first := g.bestShowingSeat()
	return NewBettingRound(g.Players, phase, bet, first,
		WithFixedLimit(bet, g.Stakes.MaxRaises))
}

func (f *studFlow) WildRule(g *Game, p *Player) eval.WildRule {
	switch {
	case f.baseball:
		return eval.WildRanks(deck.Three, deck.Nine)
	case f.followQueen:
		return followQueenWilds(g)
	}
	return eval.NoWilds
}

// followQueenWilds makes queens wild plus the rank of the up-card dealt
// immediately after the most recent face-up queen. A queen as the last
// up-card leaves only queens wild.
func followQueenWilds(g *Game) eval.WildRule {
	lastQueen := -1
	for i, c := range g.UpCardLog {
		if c.Rank == deck.Queen {
			lastQueen = i
		}
	}
	if lastQueen >= 0 && lastQueen+1 < len(g.UpCardLog) {
		return eval.WildRanks(deck.Queen, g.UpCardLog[lastQueen+1].Rank)
	}
	return eval.WildRanks(deck.Queen)
}

func (f *studFlow) Evaluate(g *Game, p *Player) eval.HandValue {
	return evaluateHigh(g, f, p)
}

func (f *studFlow) HandleDecision(g *Game, cmd Command) error {
	if g.Phase != PhaseBuyCardOffer {
		return ErrNotSupported
	}
	if cmd.Seat != g.buySeat {
		return ErrNotPlayersTurn
	}
	p := g.Players[cmd.Seat]

	switch cmd.Action {
	case BuyCard:
		if p.Chips < g.Stakes.BuyPrice {
			return ErrInsufficientChips
		}
		g.post(p, g.Stakes.BuyPrice)
		g.Pot.CollectBets(g.Players)
		c, err := g.draw()
		if err != nil {
			return err
		}
		p.Hole = append(p.Hole, c)
	case DeclineBuy:
	default:
		return fmt.Errorf("%w: %s during buy offer", ErrActionNotAllowed, cmd.Action)
	}

	g.buySeat = -1
	return nil
}

func (f *studFlow) AutoCommand(g *Game, seat int) (Command, bool) {
	if g.Phase != PhaseBuyCardOffer || seat != g.buySeat {
		return Command{}, false
	}
	return Command{Seat: seat, Action: DeclineBuy}, true
}

func (f *studFlow) PendingSeats(g *Game) []int {
	if g.Phase == PhaseBuyCardOffer && g.buySeat >= 0 {
		return []int{g.buySeat}
	}
	return nil
}
