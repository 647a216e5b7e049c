package game

import (
	"fmt"

	"github.com/cardhouse/dealerschoice/internal/deck"
	"github.com/cardhouse/dealerschoice/internal/eval"
)

// FlowHandler is a variant's phase machine. Handlers are stateless and
// shared between games; everything per-hand lives on the Game.
type FlowHandler interface {
	// FirstPhase is the entry phase for a new hand
	FirstPhase(g *Game) Phase
	// Next returns the phase that follows current
	Next(g *Game, current Phase) Phase
	// Deal executes a dealing phase
	Deal(g *Game, phase Phase) error
	// OpenRound builds the betting round for a betting phase, posting any
	// forced bets.
	OpenRound(g *Game, phase Phase) *BettingRound
	// WildRule is the wild-card rule in effect for a player's hand
	WildRule(g *Game, p *Player) eval.WildRule
	// Evaluate scores a player's hand at showdown
	Evaluate(g *Game, p *Player) eval.HandValue
	// HandleDecision applies a non-betting command (draw, drop, buy)
	HandleDecision(g *Game, cmd Command) error
	// AutoCommand is the timeout default for a seat in a decision phase
	AutoCommand(g *Game, seat int) (Command, bool)
	// PendingSeats lists seats still owing a decision in the current phase
	PendingSeats(g *Game) []int
	// Conclude runs variant bookkeeping once the hand completes
	Conclude(g *Game)
}

// handlerFor returns the shared flow handler for a variant
func handlerFor(t GameType) (FlowHandler, error) {
	h, ok := handlers[t]
	if !ok {
		return nil, fmt.Errorf("no flow handler for game type %d", t)
	}
	return h, nil
}

var handlers = map[GameType]FlowHandler{
	GameTexasHoldem:    &communityFlow{},
	GameOmaha:          &communityFlow{omaha: true},
	GameSevenCardStud:  &studFlow{},
	GameBaseball:       &studFlow{baseball: true},
	GameFollowTheQueen: &studFlow{followQueen: true},
	GameFiveCardDraw:   &drawFlow{},
	GameTwosJacksAxe:   &drawFlow{wilds: twosJacksAxeWilds},
	GameKingsAndLows:   &kingsAndLowsFlow{},
}

// twosJacksAxeWilds makes twos, jacks and the king of diamonds (the
// one-eyed man with the axe) wild.
var twosJacksAxeWilds = eval.Combine(
	eval.WildRanks(deck.Two, deck.Jack),
	eval.WildCards(deck.NewCard(deck.Diamonds, deck.King)),
)

// baseFlow carries the behaviors most variants share
type baseFlow struct{}

func (baseFlow) WildRule(*Game, *Player) eval.WildRule {
	return eval.NoWilds
}

func (baseFlow) Conclude(g *Game) {
	g.Round = nil
}

// linearNext walks an ordered phase list
func linearNext(order []Phase, current Phase) Phase {
	for i, p := range order {
		if p == current && i+1 < len(order) {
			return order[i+1]
		}
	}
	return PhaseComplete
}

// evaluateHigh scores best five of the player's own cards plus the board
func evaluateHigh(g *Game, h FlowHandler, p *Player) eval.HandValue {
	cards := p.Cards()
	cards = append(cards, g.Board...)
	return eval.Evaluate(cards, h.WildRule(g, p))
}

// openNoLimitRound starts an unraised no-limit street, first action left of
// the dealer.
func openNoLimitRound(g *Game, phase Phase) *BettingRound {
	return NewBettingRound(g.Players, phase, g.Stakes.MinBet, g.nextInHand(g.DealerSeat+1))
}
