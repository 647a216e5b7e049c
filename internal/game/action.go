package game

import "fmt"

// Action is the fixed vocabulary of player actions
type Action int

const (
	Check Action = iota
	Bet
	Call
	Raise
	Fold
	AllIn
	DrawCards
	Drop
	Stay
	BuyCard
	DeclineBuy
	DeckDraw
)

func (a Action) String() string {
	switch a {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case Fold:
		return "fold"
	case AllIn:
		return "allin"
	case DrawCards:
		return "draw"
	case Drop:
		return "drop"
	case Stay:
		return "stay"
	case BuyCard:
		return "buy-card"
	case DeclineBuy:
		return "decline-buy"
	case DeckDraw:
		return "deck-draw"
	default:
		return "unknown"
	}
}

// ParseAction maps a wire name to an Action
func ParseAction(s string) (Action, error) {
	for a := Check; a <= DeckDraw; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Command is a player's submitted action. Amount is the raise-to total for
// Bet and Raise; Discards index into the player's hole cards for draw
// actions.
type Command struct {
	Seat     int
	Action   Action
	Amount   int
	Discards []int
}

// ActionSet describes the legal betting actions for the current actor,
// with the amounts a client needs to build a valid command.
type ActionSet struct {
	CanCheck bool
	CanBet   bool
	CanCall  bool
	CanRaise bool
	CanFold  bool
	CanAllIn bool

	CallAmount int
	MinRaiseTo int
	MaxBet     int
}
