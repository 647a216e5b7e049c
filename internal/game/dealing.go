package game

import (
	"fmt"

	"github.com/cardhouse/dealerschoice/internal/deck"
)

// dealSeats returns the seats to receive cards, clockwise from the dealer's
// left, restricted to players still in the hand.
func (g *Game) dealSeats() []int {
	n := len(g.Players)
	seats := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		seat := (g.DealerSeat + i) % n
		p := g.Players[seat]
		if !p.SittingOut() && !p.Folded {
			seats = append(seats, seat)
		}
	}
	return seats
}

// draw pulls one card or fails the hand with a deck exhaustion error
func (g *Game) draw() (deck.Card, error) {
	c, ok := g.Deck.Deal()
	if !ok {
		return deck.Card{}, fmt.Errorf("%w: %s in hand %s", ErrDeckExhausted, g.Phase, g.HandID)
	}
	return c, nil
}

// dealEachHole deals count face-down cards to every live seat, one card at a
// time around the table.
func (g *Game) dealEachHole(count int) error {
	seats := g.dealSeats()
	for i := 0; i < count; i++ {
		for _, seat := range seats {
			c, err := g.draw()
			if err != nil {
				return err
			}
			g.Players[seat].Hole = append(g.Players[seat].Hole, c)
		}
	}
	return nil
}

// dealEachUp deals one face-up card to every live seat and records each in
// the up-card log.
func (g *Game) dealEachUp() error {
	for _, seat := range g.dealSeats() {
		c, err := g.draw()
		if err != nil {
			return err
		}
		g.Players[seat].Up = append(g.Players[seat].Up, c)
		g.UpCardLog = append(g.UpCardLog, c)
	}
	return nil
}

// dealEachDown deals one face-down card to every live seat
func (g *Game) dealEachDown() error {
	for _, seat := range g.dealSeats() {
		c, err := g.draw()
		if err != nil {
			return err
		}
		g.Players[seat].Hole = append(g.Players[seat].Hole, c)
	}
	return nil
}

// dealCommunity burns one card and deals n to the board
func (g *Game) dealCommunity(n int) error {
	if _, err := g.draw(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		c, err := g.draw()
		if err != nil {
			return err
		}
		g.Board = append(g.Board, c)
	}
	return nil
}

// bringInSeat is the seat showing the lowest up-card: lowest rank first,
// suit order clubs, diamonds, hearts, spades breaks ties.
func (g *Game) bringInSeat() int {
	best := -1
	var bestCard deck.Card
	for _, p := range g.Players {
		if !p.InHand() || len(p.Up) == 0 {
			continue
		}
		c := p.Up[0]
		if best == -1 || c.BringInLess(bestCard) {
			best = p.Seat
			bestCard = c
		}
	}
	return best
}

// bestShowingSeat is the seat whose exposed cards make the strongest
// partial hand; it acts first on fourth street and later.
func (g *Game) bestShowingSeat() int {
	best := -1
	var bestScore uint64
	for _, seat := range g.dealSeats() {
		p := g.Players[seat]
		if !p.InHand() || len(p.Up) == 0 {
			continue
		}
		score := showingStrength(p.Up)
		if best == -1 || score > bestScore {
			best = seat
			bestScore = score
		}
	}
	return best
}

// showingStrength packs an exposed partial hand into an orderable value:
// rank groups sorted by count then rank, four bits each.
func showingStrength(up []deck.Card) uint64 {
	counts := make(map[deck.Rank]int)
	for _, c := range up {
		counts[c.Rank]++
	}
	type group struct {
		rank  deck.Rank
		count int
	}
	groups := make([]group, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, group{r, n})
	}
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			a, b := groups[i], groups[j]
			if b.count > a.count || (b.count == a.count && b.rank > a.rank) {
				groups[i], groups[j] = groups[j], groups[i]
			}
		}
	}
	var v uint64
	for _, grp := range groups {
		for i := 0; i < grp.count; i++ {
			v = v<<4 | uint64(grp.rank)
		}
	}
	return v
}

// nextInHand finds the next live seat clockwise from `from`
func (g *Game) nextInHand(from int) int {
	n := len(g.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if g.Players[seat].InHand() {
			return seat
		}
	}
	return -1
}

// replaceDiscards removes the indexed hole cards and deals replacements.
// When the stub runs out, discards already collected this hand are shuffled
// back in.
func (g *Game) replaceDiscards(p *Player, discards []int) error {
	if len(discards) > len(p.Hole) {
		return fmt.Errorf("%w: %d discards from %d cards", ErrInvalidAmount, len(discards), len(p.Hole))
	}
	seen := make(map[int]bool, len(discards))
	for _, idx := range discards {
		if idx < 0 || idx >= len(p.Hole) {
			return fmt.Errorf("%w: discard index %d", ErrInvalidAmount, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: duplicate discard index %d", ErrInvalidAmount, idx)
		}
		seen[idx] = true
	}

	kept := make([]deck.Card, 0, len(p.Hole))
	for i, c := range p.Hole {
		if seen[i] {
			p.Discards = append(p.Discards, c)
		} else {
			kept = append(kept, c)
		}
	}
	p.Hole = kept

	for i := 0; i < len(discards); i++ {
		if g.Deck.IsEmpty() {
			g.recycleDiscards(p)
		}
		c, err := g.draw()
		if err != nil {
			return err
		}
		p.Hole = append(p.Hole, c)
	}
	return nil
}

// recycleDiscards shuffles every player's discard pile except the drawing
// player's own back into the deck.
func (g *Game) recycleDiscards(drawing *Player) {
	var pile []deck.Card
	for _, p := range g.Players {
		if p == drawing {
			continue
		}
		pile = append(pile, p.Discards...)
		p.Discards = nil
	}
	if len(pile) > 0 {
		g.Deck.Replenish(pile)
	}
}
