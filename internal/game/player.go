package game

import (
	"github.com/cardhouse/dealerschoice/internal/deck"
)

// PlayerStatus is the persistent table status of a seat
type PlayerStatus int

const (
	StatusActive PlayerStatus = iota
	StatusSittingOut
	StatusEliminated
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusSittingOut:
		return "sitting-out"
	case StatusEliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// DropDecision is a player's Kings and Lows drop-or-stay choice
type DropDecision int

const (
	DecisionPending DropDecision = iota
	DecisionDrop
	DecisionStay
)

// Player is the seat-scoped state of one player. Bet and the card
// collections reset every hand; Chips and Status persist across hands.
type Player struct {
	ID   string
	Seat int

	Chips    int
	Bet      int // current betting round
	TotalBet int // whole hand, antes included

	Folded   bool
	AllIn    bool
	FoldedIn Phase
	Decision DropDecision
	drawDone bool

	Status PlayerStatus

	Hole     []deck.Card // private
	Up       []deck.Card // public
	Discards []deck.Card
}

// NewPlayer creates a player seated with a starting stack
func NewPlayer(id string, seat, chips int) *Player {
	return &Player{ID: id, Seat: seat, Chips: chips}
}

// SittingOut reports whether the seat is excluded from dealing
func (p *Player) SittingOut() bool {
	return p.Status != StatusActive
}

// InHand reports whether the player still holds live cards this hand
func (p *Player) InHand() bool {
	return !p.Folded && !p.SittingOut() && len(p.Cards()) > 0
}

// CanAct reports whether the player may still take betting actions. A seat
// filled after the deal holds no cards and never acts this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut() && len(p.Hole)+len(p.Up) > 0
}

// Cards returns the player's full holding, hole cards first
func (p *Player) Cards() []deck.Card {
	out := make([]deck.Card, 0, len(p.Hole)+len(p.Up))
	out = append(out, p.Hole...)
	out = append(out, p.Up...)
	return out
}

// ResetForHand clears per-hand state. Chips and Status survive.
func (p *Player) ResetForHand() {
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.FoldedIn = PhaseWaitingToStart
	p.Decision = DecisionPending
	p.drawDone = false
	p.Hole = nil
	p.Up = nil
	p.Discards = nil
}
