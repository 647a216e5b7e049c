package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardhouse/dealerschoice/internal/game"
	"github.com/cardhouse/dealerschoice/internal/history"
)

// Subscriber receives table broadcasts for one seat
type Subscriber interface {
	Notify(msg *Message)
}

// Table is the actor that owns one game. All game access happens on the
// Run goroutine; public methods post closures into the mailbox and wait.
type Table struct {
	ID  string
	cfg TableConfig

	game  *game.Game
	seats []*game.Player

	requests chan func()
	subs     map[int]Subscriber
	owners   map[int]string // seat -> player ID

	clock   quartz.Clock
	timer   *quartz.Timer
	timeout time.Duration

	// actionSeq counts applied mutations; pending timer fires compare it
	// to detect that a command beat them to the mailbox.
	actionSeq int

	coverageTimer *quartz.Timer
	coveragePause time.Duration

	store    *history.Store
	recorded int

	logger *log.Logger
}

// NewTable builds a table from config. store may be nil to disable hand
// history.
func NewTable(cfg TableConfig, rng *rand.Rand, clock quartz.Clock, timeout time.Duration, store *history.Store, logger *log.Logger) (*Table, error) {
	gt, err := game.ParseGameType(cfg.Game)
	if err != nil {
		return nil, err
	}

	seats := make([]*game.Player, cfg.Seats)
	for i := range seats {
		seats[i] = game.NewPlayer("", i, 0)
		seats[i].Status = game.StatusSittingOut
	}

	g, err := game.New(gt, seats, cfg.Stakes(), rng, game.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Table{
		ID:            cfg.Name,
		cfg:           cfg,
		game:          g,
		seats:         seats,
		requests:      make(chan func(), 64),
		subs:          make(map[int]Subscriber),
		owners:        make(map[int]string),
		clock:         clock,
		timeout:       timeout,
		coveragePause: time.Duration(cfg.CoveragePause) * time.Second,
		store:         store,
		logger:        logger.WithPrefix("table/" + cfg.Name),
	}, nil
}

// Run processes the mailbox until the context ends
func (t *Table) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-t.requests:
			fn()
		case <-ctx.Done():
			if t.timer != nil {
				t.timer.Stop()
			}
			if t.coverageTimer != nil {
				t.coverageTimer.Stop()
			}
			return ctx.Err()
		}
	}
}

// do runs fn on the table goroutine and waits for it
func (t *Table) do(fn func()) {
	done := make(chan struct{})
	t.requests <- func() {
		defer close(done)
		fn()
	}
	<-done
}

// Join seats a player, at the requested seat or the first free one
func (t *Table) Join(playerID string, want *int, sub Subscriber) (seat, chips int, err error) {
	t.do(func() {
		seat = -1
		for s := range t.seats {
			if t.owners[s] == "" && (want == nil || *want == s) {
				seat = s
				break
			}
		}
		if seat < 0 {
			err = fmt.Errorf("no free seat at table %s", t.ID)
			return
		}
		t.owners[seat] = playerID
		t.subs[seat] = sub
		p := t.seats[seat]
		p.ID = playerID
		p.Chips = t.cfg.StartingChips
		p.Status = game.StatusActive
		chips = p.Chips
		t.logger.Info("player joined", "player", playerID, "seat", seat)
		t.broadcast()
	})
	return seat, chips, err
}

// Leave releases a player's seat. Mid-hand the seat keeps playing on
// auto-action until the hand ends.
func (t *Table) Leave(playerID string) {
	t.do(func() {
		for seat, owner := range t.owners {
			if owner != playerID {
				continue
			}
			delete(t.owners, seat)
			delete(t.subs, seat)
			p := t.seats[seat]
			p.ID = ""
			if t.game.Phase == game.PhaseComplete || t.game.Phase == game.PhaseWaitingToStart {
				p.Status = game.StatusSittingOut
				p.Chips = 0
			}
			t.logger.Info("player left", "player", playerID, "seat", seat)
		}
		t.broadcast()
	})
}

// SitOut toggles whether a seat is dealt into the next hand
func (t *Table) SitOut(playerID string, seat int, out bool) error {
	var err error
	t.do(func() {
		if seat < 0 || seat >= len(t.seats) || t.owners[seat] != playerID {
			err = fmt.Errorf("seat %d is not held by %s", seat, playerID)
			return
		}
		if out {
			t.seats[seat].Status = game.StatusSittingOut
		} else {
			t.seats[seat].Status = game.StatusActive
		}
		t.broadcast()
	})
	return err
}

// StartHand begins the next hand. When the variant requires every stack to
// cover a carried pot, short seats get a top-up window first; once it
// expires, still-short seats are sat out and the hand deals without them.
func (t *Table) StartHand() error {
	var err error
	t.do(func() {
		if t.coverageTimer != nil {
			err = fmt.Errorf("table %s is paused while short stacks top up", t.ID)
			return
		}
		if short := t.game.UncoveredSeats(); len(short) > 0 {
			if t.coveragePause > 0 {
				t.beginCoveragePause(short)
				return
			}
			t.sitOutShortStacks()
		}
		err = t.game.StartHand()
		if err != nil {
			return
		}
		t.afterChange()
	})
	return err
}

// beginCoveragePause holds the next hand open for the top-up window
func (t *Table) beginCoveragePause(short []int) {
	t.logger.Info("pausing for pot coverage",
		"carryover", t.game.Carryover, "seats", short, "window", t.coveragePause)
	t.coverageTimer = t.clock.AfterFunc(t.coveragePause, func() {
		t.requests <- func() {
			t.coverageTimer = nil
			t.sitOutShortStacks()
			if err := t.game.StartHand(); err != nil {
				t.logger.Error("starting hand after coverage pause", "err", err)
				t.broadcast()
				return
			}
			t.afterChange()
		}
	})
	t.broadcast()
}

// sitOutShortStacks benches every seat that cannot match the carried pot
func (t *Table) sitOutShortStacks() {
	for _, seat := range t.game.UncoveredSeats() {
		t.seats[seat].Status = game.StatusSittingOut
		t.logger.Info("sitting out short stack",
			"seat", seat, "chips", t.seats[seat].Chips, "carryover", t.game.Carryover)
	}
}

// Act applies a player command
func (t *Table) Act(playerID string, cmd game.Command) error {
	var err error
	t.do(func() {
		if t.owners[cmd.Seat] != playerID {
			err = fmt.Errorf("seat %d is not held by %s", cmd.Seat, playerID)
			return
		}
		err = t.game.HandleCommand(cmd)
		if err != nil {
			return
		}
		t.afterChange()
	})
	return err
}

// Snapshot returns the state redacted for one seat (-1 for spectators)
func (t *Table) Snapshot(seat int) game.Snapshot {
	var snap game.Snapshot
	t.do(func() {
		snap = t.game.Snapshot(seat)
	})
	return snap
}

// Summary reports lobby information
func (t *Table) Summary() TableSummary {
	var sum TableSummary
	t.do(func() {
		sum = TableSummary{
			ID:      t.ID,
			Game:    t.cfg.Game,
			Seats:   len(t.seats),
			Seated:  len(t.owners),
			HandNo:  t.game.HandNo,
			Playing: t.game.Phase != game.PhaseWaitingToStart && t.game.Phase != game.PhaseComplete,
		}
	})
	return sum
}

// afterChange runs on the table goroutine after any successful mutation:
// rearm the action timer, persist finished hands, broadcast state.
func (t *Table) afterChange() {
	t.actionSeq++
	t.armTimer()
	t.recordHand()
	t.broadcast()
}

// armTimer schedules auto-action for the current pending seats. Timer fires
// post back into the mailbox, so auto-actions stay serialized with player
// commands.
func (t *Table) armTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	pending := t.game.PendingSeats()
	if len(pending) == 0 || t.timeout <= 0 {
		return
	}
	seq := t.actionSeq
	t.timer = t.clock.AfterFunc(t.timeout, func() {
		t.requests <- func() {
			// Stale fire: a command was applied after this timer was armed,
			// possibly while the fire was already queued behind it.
			if t.actionSeq != seq {
				return
			}
			for _, seat := range t.game.PendingSeats() {
				if cmd, ok := t.game.AutoAct(seat); ok {
					t.logger.Info("timeout auto-action", "seat", seat, "action", cmd.Action)
				}
			}
			t.afterChange()
		}
	})
}

// recordHand persists a completed hand exactly once
func (t *Table) recordHand() {
	if t.store == nil || t.game.Phase != game.PhaseComplete || t.game.Result == nil {
		return
	}
	if t.recorded == t.game.HandNo {
		return
	}
	t.recorded = t.game.HandNo

	snap := t.game.Snapshot(-1)
	raw, err := json.Marshal(snap.Result)
	if err != nil {
		t.logger.Error("marshaling hand result", "err", err)
		return
	}
	rec := history.Record{
		TableID:   t.ID,
		HandNo:    t.game.HandNo,
		HandID:    t.game.HandID,
		Game:      t.cfg.Game,
		Pot:       t.game.Result.TotalPot,
		Carryover: t.game.Carryover,
		Result:    raw,
		Players:   t.playerRecords(),
	}
	if err := t.store.Record(rec); err != nil {
		t.logger.Error("recording hand", "hand", t.game.HandID, "err", err)
	}
}

// playerRecords builds the per-seat outcome rows for the completed hand
func (t *Table) playerRecords() []history.PlayerRecord {
	result := t.game.Result
	shown := make(map[int]string)
	for _, h := range result.Hands {
		var cards []string
		for _, c := range h.Cards {
			cards = append(cards, c.String())
		}
		shown[h.Seat] = strings.Join(cards, " ")
	}

	var out []history.PlayerRecord
	for _, p := range t.seats {
		if p.TotalBet == 0 && len(p.Hole)+len(p.Up) == 0 {
			continue
		}
		pr := history.PlayerRecord{
			Seat:       p.Seat,
			PlayerID:   p.ID,
			Folded:     p.Folded,
			ShowedDown: shown[p.Seat] != "",
			Net:        result.Winnings[p.Seat] - p.TotalBet,
			Cards:      shown[p.Seat],
		}
		if p.Folded {
			pr.FoldPhase = p.FoldedIn.String()
		}
		out = append(out, pr)
	}
	return out
}

// broadcast sends each subscriber its own redacted view
func (t *Table) broadcast() {
	for seat, sub := range t.subs {
		snap := t.game.Snapshot(seat)
		msg, err := NewMessage(TypeState, StateData{TableID: t.ID, State: snap})
		if err != nil {
			t.logger.Error("marshaling state", "err", err)
			continue
		}
		sub.Notify(msg)
	}
}
