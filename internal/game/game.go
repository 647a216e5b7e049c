package game

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cardhouse/dealerschoice/internal/deck"
)

// Game runs one table through successive hands of a single variant. All
// methods must be called from one goroutine; the table actor owns the game.
type Game struct {
	HandID string
	HandNo int

	Rules   GameRules
	Stakes  Stakes
	Players []*Player // seat-indexed: Players[i].Seat == i

	Phase      Phase
	DealerSeat int
	Deck       *deck.Deck
	Board      []deck.Card
	Pot        *PotManager
	Round      *BettingRound
	Result     *HandResult

	// Carryover rides between hands when a drop-or-stay pot goes unwon
	// or losers match it.
	Carryover int

	// UpCardLog records every face-up card in deal order. Follow the
	// Queen derives its wild rank from it.
	UpCardLog []deck.Card

	// Baseball buy-card interrupt state.
	pendingBuys []int
	buySeat     int
	resumePhase Phase

	// Kings and Lows player-versus-deck state.
	DeckHand     []deck.Card
	deckDrawDone bool

	handler FlowHandler
	rng     *rand.Rand
	log     *log.Logger
}

// Option configures a Game at construction
type Option func(*Game)

// WithLogger attaches a structured logger; the default discards nothing and
// writes to the package default.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithDealer sets the initial dealer seat
func WithDealer(seat int) Option {
	return func(g *Game) { g.DealerSeat = seat }
}

// New creates a game for the given variant. players must be seat-indexed
// and stakes are normalized in place.
func New(t GameType, players []*Player, stakes Stakes, rng *rand.Rand, opts ...Option) (*Game, error) {
	rules, err := RulesFor(t)
	if err != nil {
		return nil, err
	}
	handler, err := handlerFor(t)
	if err != nil {
		return nil, err
	}
	for i, p := range players {
		if p.Seat != i {
			return nil, fmt.Errorf("%w: players must be seat-indexed", ErrInvariant)
		}
	}
	stakes.Normalize()

	g := &Game{
		Rules:   rules,
		Stakes:  stakes,
		Players: players,
		Phase:   PhaseWaitingToStart,
		handler: handler,
		rng:     rng,
		log:     log.Default(),
		buySeat: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// StartHand deals a fresh hand. The dealer button moves to the next seat
// that is dealt in; the first hand keeps the configured dealer.
func (g *Game) StartHand() error {
	if g.Phase != PhaseWaitingToStart && g.Phase != PhaseComplete {
		return ErrHandInProgress
	}

	dealtIn := 0
	for _, p := range g.Players {
		if p.Status == StatusActive && p.Chips == 0 {
			p.Status = StatusEliminated
		}
		if !p.SittingOut() {
			dealtIn++
		}
	}
	if dealtIn < g.Rules.MinPlayers {
		return fmt.Errorf("%w: have %d, need %d", ErrTooFewPlayers, dealtIn, g.Rules.MinPlayers)
	}
	if dealtIn > g.Rules.MaxPlayers {
		return fmt.Errorf("%w: have %d, max %d", ErrTooManyPlayers, dealtIn, g.Rules.MaxPlayers)
	}

	g.HandNo++
	g.HandID = uuid.NewString()
	for _, p := range g.Players {
		p.ResetForHand()
	}
	if g.HandNo > 1 {
		g.DealerSeat = g.nextOccupied(g.DealerSeat + 1)
	}

	g.Deck = deck.New(g.rng)
	g.Board = nil
	g.Round = nil
	g.Result = nil
	g.UpCardLog = nil
	g.pendingBuys = nil
	g.buySeat = -1
	g.DeckHand = nil
	g.deckDrawDone = false
	g.Pot = NewPotManager(g.Carryover)
	g.Carryover = 0

	g.Phase = g.handler.FirstPhase(g)
	g.log.Info("hand started",
		"hand", g.HandID, "no", g.HandNo,
		"game", g.Rules.Type, "dealer", g.DealerSeat, "players", dealtIn)
	return g.advance()
}

// UncoveredSeats lists the dealt-in seats whose stack cannot match the pot
// that will carry into the next hand. Variants without pot matching, and
// hands with nothing carried over, return nil. Only meaningful between
// hands, before StartHand.
func (g *Game) UncoveredSeats() []int {
	if !g.Rules.PotMatching || g.Carryover == 0 {
		return nil
	}
	var seats []int
	for _, p := range g.Players {
		if !p.SittingOut() && p.Chips < g.Carryover {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// HandleCommand validates and applies a player command for the current
// phase. Rule violations return a typed error and leave state untouched.
func (g *Game) HandleCommand(cmd Command) error {
	if cmd.Seat < 0 || cmd.Seat >= len(g.Players) {
		return fmt.Errorf("%w: no seat %d", ErrActionNotAllowed, cmd.Seat)
	}
	d, ok := g.Rules.Descriptor(g.Phase)
	if !ok || !d.RequiresAction {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.Phase)
	}
	if !actionIn(d.Actions, cmd.Action) {
		return fmt.Errorf("%w: %s during %s", ErrActionNotAllowed, cmd.Action, g.Phase)
	}

	switch d.Category {
	case CategoryBetting:
		if g.Round == nil {
			return fmt.Errorf("%w: no betting round open", ErrWrongPhase)
		}
		if err := g.Round.Apply(cmd.Seat, cmd.Action, cmd.Amount); err != nil {
			return err
		}
	case CategoryDrawing:
		if err := g.handler.HandleDecision(g, cmd); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.Phase)
	}

	g.log.Debug("action applied",
		"hand", g.HandID, "phase", g.Phase,
		"seat", cmd.Seat, "action", cmd.Action, "amount", cmd.Amount)

	if g.countInHand() <= 1 && g.Phase != PhaseComplete {
		// Hand ends immediately when one player remains.
		g.Pot.CollectBets(g.Players)
		g.Round = nil
		g.Phase = PhaseShowdown
	} else if d.Category == CategoryBetting && g.Round.Complete {
		g.finishRound()
	}
	return g.advance()
}

// AutoAct applies the timeout default for a seat: check when free, fold when
// facing a bet, stand pat, drop, decline. A seat that is not pending is a
// no-op, so duplicate timer fires are harmless.
func (g *Game) AutoAct(seat int) (Command, bool) {
	if seat < 0 || seat >= len(g.Players) {
		return Command{}, false
	}
	d, ok := g.Rules.Descriptor(g.Phase)
	if !ok || !d.RequiresAction {
		return Command{}, false
	}

	var cmd Command
	switch d.Category {
	case CategoryBetting:
		if g.Round == nil || g.Round.ActorSeat != seat {
			return Command{}, false
		}
		as := g.Round.AvailableActions(seat)
		cmd = Command{Seat: seat, Action: Fold}
		if as.CanCheck {
			cmd.Action = Check
		}
	case CategoryDrawing:
		var pending bool
		cmd, pending = g.handler.AutoCommand(g, seat)
		if !pending {
			return Command{}, false
		}
	default:
		return Command{}, false
	}

	if err := g.HandleCommand(cmd); err != nil {
		g.log.Error("auto action rejected", "hand", g.HandID, "seat", seat, "err", err)
		return Command{}, false
	}
	g.log.Info("auto action", "hand", g.HandID, "seat", seat, "action", cmd.Action)
	return cmd, true
}

// PendingSeats returns the seats the game is waiting on in the current phase
func (g *Game) PendingSeats() []int {
	d, ok := g.Rules.Descriptor(g.Phase)
	if !ok || !d.RequiresAction {
		return nil
	}
	if d.Category == CategoryBetting {
		if g.Round == nil || g.Round.Complete {
			return nil
		}
		return []int{g.Round.ActorSeat}
	}
	return g.handler.PendingSeats(g)
}

// AvailableActions reports the legal actions for a seat right now
func (g *Game) AvailableActions(seat int) ActionSet {
	if g.Round != nil && !g.Round.Complete {
		return g.Round.AvailableActions(seat)
	}
	return ActionSet{}
}

// advance runs automatic phases (antes, dealing, showdown) until the game
// needs player input or the hand completes.
func (g *Game) advance() error {
	for {
		if g.Phase == PhaseComplete {
			g.handler.Conclude(g)
			return nil
		}
		d, ok := g.Rules.Descriptor(g.Phase)
		if !ok {
			return fmt.Errorf("%w: phase %s not in %s rules", ErrInvariant, g.Phase, g.Rules.Type)
		}

		switch d.Category {
		case CategorySetup:
			g.collectAntes()
			g.Phase = g.handler.Next(g, g.Phase)

		case CategoryDealing:
			if err := g.handler.Deal(g, g.Phase); err != nil {
				return err
			}
			g.Phase = g.handler.Next(g, g.Phase)

		case CategoryBetting:
			if g.Round == nil || g.Round.Phase != g.Phase {
				g.Round = g.handler.OpenRound(g, g.Phase)
			}
			if g.Round.Complete {
				g.finishRound()
				continue
			}
			return nil

		case CategoryDrawing:
			if len(g.handler.PendingSeats(g)) > 0 {
				return nil
			}
			g.Phase = g.handler.Next(g, g.Phase)

		case CategoryResolution:
			if g.Phase == PhaseShowdown {
				if err := g.resolve(); err != nil {
					return err
				}
			}
			g.Phase = g.handler.Next(g, g.Phase)
		}
	}
}

// finishRound sweeps bets into the pot and moves past a completed street
func (g *Game) finishRound() {
	g.Pot.CollectBets(g.Players)
	phase := g.Round.Phase
	g.Round = nil
	g.Phase = g.handler.Next(g, phase)
}

// collectAntes posts each dealt-in player's ante, short stacks all-in
func (g *Game) collectAntes() {
	if g.Stakes.Ante <= 0 {
		return
	}
	for _, p := range g.Players {
		if p.SittingOut() {
			continue
		}
		g.post(p, g.Stakes.Ante)
	}
	g.Pot.CollectBets(g.Players)
}

// post moves a forced amount from stack to bet, capped at the stack
func (g *Game) post(p *Player, amount int) int {
	paid := min(amount, p.Chips)
	p.Chips -= paid
	p.Bet += paid
	p.TotalBet += paid
	if p.Chips == 0 {
		p.AllIn = true
	}
	return paid
}

func (g *Game) countInHand() int {
	n := 0
	for _, p := range g.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// nextOccupied finds the next seat clockwise that is dealt in
func (g *Game) nextOccupied(from int) int {
	n := len(g.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if !g.Players[seat].SittingOut() {
			return seat
		}
	}
	return from % n
}

func actionIn(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
