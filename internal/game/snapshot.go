package game

import (
	"github.com/cardhouse/dealerschoice/internal/deck"
)

// PlayerView is one seat as a particular viewer is allowed to see it.
// Hole cards appear only for the viewer's own seat, or for shown hands once
// the hand resolves.
type PlayerView struct {
	ID        string   `json:"id"`
	Seat      int      `json:"seat"`
	Chips     int      `json:"chips"`
	Bet       int      `json:"bet"`
	TotalBet  int      `json:"totalBet"`
	Folded    bool     `json:"folded"`
	AllIn     bool     `json:"allIn"`
	Status    string   `json:"status"`
	Hole      []string `json:"hole,omitempty"`
	HoleCount int      `json:"holeCount"`
	Up        []string `json:"up,omitempty"`
}

// AwardView is one pot award in a resolved hand
type AwardView struct {
	Amount  int   `json:"amount"`
	Winners []int `json:"winners"`
}

// ShownHandView is a revealed hand with its evaluated description
type ShownHandView struct {
	Seat  int      `json:"seat"`
	Cards []string `json:"cards"`
	Hand  string   `json:"hand"`
}

// ResultView is the outcome block attached once a hand completes
type ResultView struct {
	Pot      int             `json:"pot"`
	Pots     []AwardView     `json:"pots"`
	Hands    []ShownHandView `json:"hands,omitempty"`
	Winnings map[int]int     `json:"winnings"`
	DeckHand []string        `json:"deckHand,omitempty"`
	DeckWins bool            `json:"deckWins,omitempty"`
	FoldWin  bool            `json:"foldWin,omitempty"`
}

// Snapshot is the full game state redacted for one viewer. Seat -1 gets the
// spectator view with every hole card hidden.
type Snapshot struct {
	HandID     string       `json:"handId"`
	HandNo     int          `json:"handNo"`
	Game       string       `json:"game"`
	Phase      string       `json:"phase"`
	DealerSeat int          `json:"dealerSeat"`
	Board      []string     `json:"board,omitempty"`
	Pot        int          `json:"pot"`
	CurrentBet int          `json:"currentBet"`
	ActorSeat  int          `json:"actorSeat"`
	Pending    []int        `json:"pending,omitempty"`
	Players    []PlayerView `json:"players"`
	Actions    *ActionSet   `json:"actions,omitempty"`
	Result     *ResultView  `json:"result,omitempty"`
}

func cardStrings(cards []deck.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Snapshot builds the state view for one seat
func (g *Game) Snapshot(viewer int) Snapshot {
	snap := Snapshot{
		HandID:     g.HandID,
		HandNo:     g.HandNo,
		Game:       g.Rules.Type.String(),
		Phase:      g.Phase.String(),
		DealerSeat: g.DealerSeat,
		Board:      cardStrings(g.Board),
		ActorSeat:  -1,
		Pending:    g.PendingSeats(),
	}
	if g.Pot != nil {
		snap.Pot = g.Pot.Total
	}
	if g.Round != nil && !g.Round.Complete {
		snap.CurrentBet = g.Round.CurrentBet
		snap.ActorSeat = g.Round.ActorSeat
	}

	shown := make(map[int]bool)
	if g.Result != nil {
		for _, h := range g.Result.Hands {
			shown[h.Seat] = true
		}
	}

	for _, p := range g.Players {
		pv := PlayerView{
			ID:        p.ID,
			Seat:      p.Seat,
			Chips:     p.Chips,
			Bet:       p.Bet,
			TotalBet:  p.TotalBet,
			Folded:    p.Folded,
			AllIn:     p.AllIn,
			Status:    p.Status.String(),
			HoleCount: len(p.Hole),
			Up:        cardStrings(p.Up),
		}
		if p.Seat == viewer || shown[p.Seat] {
			pv.Hole = cardStrings(p.Hole)
		}
		snap.Players = append(snap.Players, pv)
	}

	if viewer >= 0 && viewer < len(g.Players) {
		if as := g.AvailableActions(viewer); as.CanFold {
			snap.Actions = &as
		}
	}

	if g.Result != nil {
		rv := &ResultView{
			Pot:      g.Result.TotalPot,
			Winnings: g.Result.Winnings,
			DeckHand: cardStrings(g.Result.DeckHand),
			DeckWins: g.Result.DeckWins,
			FoldWin:  g.Result.FoldWin,
		}
		for _, pa := range g.Result.Pots {
			rv.Pots = append(rv.Pots, AwardView{Amount: pa.Amount, Winners: pa.Winners})
		}
		for _, h := range g.Result.Hands {
			rv.Hands = append(rv.Hands, ShownHandView{Seat: h.Seat, Cards: cardStrings(h.Cards), Hand: h.Value.String()})
		}
		snap.Result = rv
	}
	return snap
}
