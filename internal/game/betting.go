package game

import (
	"fmt"
)

// BettingRound tracks the state of one betting street. At most one round is
// open per game at any time. The players slice is the game's seat-indexed
// slice; the round mutates chip stacks and per-round bets, the game owns
// everything else.
type BettingRound struct {
	Phase           Phase
	CurrentBet      int
	MinBet          int
	LastRaiseAmount int
	RaiseCount      int
	MaxRaises       int // 0 = unlimited
	FixedBet        int // >0 = fixed-limit street, bets in exact increments
	ActorSeat       int
	LastAggressor   int
	Complete        bool

	players []*Player
	// acted is reset whenever a full raise reopens the action. A short
	// all-in raise deliberately leaves it alone: players who already
	// acted get a new call amount but no right to re-raise.
	acted map[int]bool
}

// RoundOption configures a new betting round
type RoundOption func(*BettingRound)

// WithFixedLimit makes the round fixed-limit: bets and raises are exact
// multiples of betSize, and raises beyond maxRaises are rejected.
func WithFixedLimit(betSize, maxRaises int) RoundOption {
	return func(br *BettingRound) {
		br.FixedBet = betSize
		br.MaxRaises = maxRaises
	}
}

// WithOpeningBet seeds the round with a forced bet (blinds or bring-in)
// already posted to the players. The forced bettor is not marked as having
// acted, so they keep their option.
func WithOpeningBet(level, lastRaise int) RoundOption {
	return func(br *BettingRound) {
		br.CurrentBet = level
		br.LastRaiseAmount = lastRaise
	}
}

// NewBettingRound starts a betting round. players must be seat-indexed
// (players[i].Seat == i); firstActor is the seat that acts first.
func NewBettingRound(players []*Player, phase Phase, minBet, firstActor int, opts ...RoundOption) *BettingRound {
	br := &BettingRound{
		Phase:         phase,
		MinBet:        minBet,
		ActorSeat:     firstActor,
		LastAggressor: -1,
		players:       players,
		acted:         make(map[int]bool),
	}
	for _, opt := range opts {
		opt(br)
	}
	if br.ActorSeat < 0 || !players[br.ActorSeat].CanAct() {
		br.ActorSeat = br.nextActor(br.ActorSeat + 1)
	}
	br.Complete = br.isComplete()
	if br.Complete {
		br.ActorSeat = -1
	}
	return br
}

// minRaiseIncrement is the smallest legal full-raise increment
func (br *BettingRound) minRaiseIncrement() int {
	if br.FixedBet > 0 {
		return br.FixedBet
	}
	if br.LastRaiseAmount > 0 {
		return br.LastRaiseAmount
	}
	return br.MinBet
}

// fixedRaiseTarget is the next legal raise-to level on a fixed-limit street
func (br *BettingRound) fixedRaiseTarget() int {
	return (br.CurrentBet/br.FixedBet + 1) * br.FixedBet
}

// AvailableActions returns the legal actions for a seat. A seat that is not
// the current actor gets an empty set.
func (br *BettingRound) AvailableActions(seat int) ActionSet {
	var as ActionSet
	if br.Complete || seat != br.ActorSeat {
		return as
	}
	p := br.players[seat]
	if !p.CanAct() {
		return as
	}

	as.CanFold = true
	as.CanAllIn = p.Chips > 0
	as.MaxBet = p.Bet + p.Chips

	toCall := br.CurrentBet - p.Bet
	capped := br.MaxRaises > 0 && br.RaiseCount >= br.MaxRaises

	if toCall <= 0 {
		as.CanCheck = true
		if br.CurrentBet == 0 {
			open := br.MinBet
			if br.FixedBet > 0 {
				open = br.FixedBet
			}
			if p.Chips >= open {
				as.CanBet = true
				as.MinRaiseTo = open
			}
		} else if !capped {
			// Matched a forced bet (big blind option).
			target := br.CurrentBet + br.minRaiseIncrement()
			if br.FixedBet > 0 {
				target = br.fixedRaiseTarget()
			}
			if p.Bet+p.Chips >= target {
				as.CanRaise = true
				as.MinRaiseTo = target
			}
		}
		return as
	}

	as.CanCall = true
	as.CallAmount = min(toCall, p.Chips)

	// acted[seat] with chips still owed means only a short all-in has
	// happened since this player last acted; the action is not reopened.
	if !capped && !br.acted[seat] {
		target := br.CurrentBet + br.minRaiseIncrement()
		if br.FixedBet > 0 {
			target = br.fixedRaiseTarget()
		}
		if p.Bet+p.Chips >= target {
			as.CanRaise = true
			as.MinRaiseTo = target
		}
	}
	return as
}

// Apply validates and applies a betting action for seat. On error the round
// and player state are unchanged.
func (br *BettingRound) Apply(seat int, action Action, amount int) error {
	if br.Complete {
		return ErrRoundComplete
	}
	if seat != br.ActorSeat {
		return ErrNotPlayersTurn
	}
	p := br.players[seat]
	if !p.CanAct() {
		return ErrActionNotAllowed
	}

	toCall := br.CurrentBet - p.Bet

	switch action {
	case Check:
		if toCall != 0 {
			return fmt.Errorf("%w: cannot check, %d to call", ErrActionNotAllowed, toCall)
		}

	case Call:
		if toCall <= 0 {
			return fmt.Errorf("%w: nothing to call", ErrActionNotAllowed)
		}
		br.pay(p, min(toCall, p.Chips))

	case Bet:
		if br.CurrentBet != 0 {
			return fmt.Errorf("%w: there is a bet, raise instead", ErrActionNotAllowed)
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if br.FixedBet > 0 && amount != br.FixedBet {
			return fmt.Errorf("%w: fixed limit bet must be %d", ErrInvalidAmount, br.FixedBet)
		}
		if br.FixedBet == 0 && amount < br.MinBet {
			return fmt.Errorf("%w: minimum bet is %d", ErrBelowMinimumBet, br.MinBet)
		}
		if amount-p.Bet > p.Chips {
			return ErrInsufficientChips
		}
		br.reopen(p, amount)

	case Raise:
		if br.CurrentBet == 0 {
			return fmt.Errorf("%w: nothing to raise, bet instead", ErrActionNotAllowed)
		}
		if br.MaxRaises > 0 && br.RaiseCount >= br.MaxRaises {
			return ErrRaiseCapExceeded
		}
		if br.acted[seat] && toCall > 0 {
			return fmt.Errorf("%w: action was not reopened", ErrActionNotAllowed)
		}
		target := amount
		if br.FixedBet > 0 {
			target = br.fixedRaiseTarget()
			if amount != 0 && amount != target {
				return fmt.Errorf("%w: fixed limit raise must be to %d", ErrInvalidAmount, target)
			}
		} else if minTo := br.CurrentBet + br.minRaiseIncrement(); target < minTo {
			return fmt.Errorf("%w: minimum raise is to %d", ErrBelowMinimumBet, minTo)
		}
		if target-p.Bet > p.Chips {
			return ErrInsufficientChips
		}
		br.reopen(p, target)

	case AllIn:
		if p.Chips == 0 {
			return ErrInsufficientChips
		}
		target := p.Bet + p.Chips
		capped := br.MaxRaises > 0 && br.RaiseCount >= br.MaxRaises
		if br.FixedBet > 0 {
			// A shove never breaks the fixed-limit structure: it is capped
			// at the next raise target while raising is open for this seat,
			// and at the call amount otherwise. Only a stack short of those
			// amounts is all-in for less.
			limit := br.CurrentBet
			if !capped && !(br.acted[seat] && toCall > 0) {
				limit = br.fixedRaiseTarget()
			}
			if target > limit {
				target = limit
			}
			if target == limit && target > br.CurrentBet {
				br.reopen(p, target)
			} else {
				br.pay(p, target-p.Bet)
				if p.Bet > br.CurrentBet {
					br.CurrentBet = p.Bet
				}
			}
		} else {
			fullRaise := target >= br.CurrentBet+br.minRaiseIncrement() && !capped
			if target > br.CurrentBet && fullRaise {
				br.reopen(p, target)
			} else {
				br.pay(p, p.Chips)
				if p.Bet > br.CurrentBet {
					// All-in for less than a full raise: callers owe the
					// difference but the action is not reopened.
					br.CurrentBet = p.Bet
				}
			}
			p.AllIn = true
		}

	case Fold:
		p.Folded = true
		p.FoldedIn = br.Phase

	default:
		return fmt.Errorf("%w: %s is not a betting action", ErrActionNotAllowed, action)
	}

	br.acted[seat] = true
	br.advance()
	return nil
}

// pay moves chips from the player's stack into their round bet
func (br *BettingRound) pay(p *Player, amount int) {
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// reopen applies a full bet or raise to target and reopens the action for
// every other player.
func (br *BettingRound) reopen(p *Player, target int) {
	if br.CurrentBet > 0 {
		br.RaiseCount++
	}
	br.LastRaiseAmount = target - br.CurrentBet
	br.CurrentBet = target
	br.LastAggressor = p.Seat
	br.pay(p, target-p.Bet)
	br.acted = make(map[int]bool)
}

// advance rotates to the next actor and recomputes completion
func (br *BettingRound) advance() {
	br.Complete = br.isComplete()
	if br.Complete {
		br.ActorSeat = -1
		return
	}
	br.ActorSeat = br.nextActor(br.ActorSeat + 1)
	if br.ActorSeat == -1 {
		br.Complete = true
	}
}

// nextActor finds the next seat that can act, clockwise from `from`
func (br *BettingRound) nextActor(from int) int {
	n := len(br.players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if br.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// isComplete implements the round-completion invariant: one player left, or
// every non-folded non-all-in player has matched the current bet and acted
// since the last full raise.
func (br *BettingRound) isComplete() bool {
	inHand := 0
	for _, p := range br.players {
		if !p.Folded && !p.SittingOut() {
			inHand++
		}
	}
	if inHand <= 1 {
		return true
	}

	for _, p := range br.players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != br.CurrentBet || !br.acted[p.Seat] {
			return false
		}
	}
	return true
}
