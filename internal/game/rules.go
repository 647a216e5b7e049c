package game

import (
	"fmt"
	"strings"
)

// GameType selects the poker variant a table plays
type GameType int

const (
	GameFiveCardDraw GameType = iota
	GameSevenCardStud
	GameTexasHoldem
	GameOmaha
	GameBaseball
	GameFollowTheQueen
	GameKingsAndLows
	GameTwosJacksAxe
)

var gameNames = map[GameType]string{
	GameFiveCardDraw:   "five-card-draw",
	GameSevenCardStud:  "seven-card-stud",
	GameTexasHoldem:    "texas-holdem",
	GameOmaha:          "omaha",
	GameBaseball:       "baseball",
	GameFollowTheQueen: "follow-the-queen",
	GameKingsAndLows:   "kings-and-lows",
	GameTwosJacksAxe:   "twos-jacks-axe",
}

func (t GameType) String() string {
	if s, ok := gameNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseGameType maps a config or wire name to a GameType
func ParseGameType(s string) (GameType, error) {
	for t, name := range gameNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown game type %q", s)
}

// Stakes are the chip parameters for a table. Zero values fall back to
// sensible derivations in Normalize.
type Stakes struct {
	Ante       int
	SmallBlind int
	BigBlind   int
	MinBet     int // no-limit minimum opening bet
	SmallBet   int // fixed-limit early streets
	BigBet     int // fixed-limit late streets
	BringIn    int
	BuyPrice   int // Baseball face-up four purchase
	MaxRaises  int // fixed-limit cap per street
}

// Normalize fills derived defaults: big bet doubles the small bet, the
// bring-in is half the small bet, a buy costs twice the ante.
func (s *Stakes) Normalize() {
	if s.BigBlind == 0 && s.SmallBlind > 0 {
		s.BigBlind = s.SmallBlind * 2
	}
	if s.MinBet == 0 {
		s.MinBet = max(s.BigBlind, s.Ante*2, 2)
	}
	if s.SmallBet == 0 {
		s.SmallBet = s.MinBet
	}
	if s.BigBet == 0 {
		s.BigBet = s.SmallBet * 2
	}
	if s.BringIn == 0 {
		s.BringIn = max(s.SmallBet/2, 1)
	}
	if s.BuyPrice == 0 {
		s.BuyPrice = max(s.Ante*2, 2)
	}
	if s.MaxRaises == 0 {
		s.MaxRaises = 3
	}
}

// GameRules is the static shape of a variant: player limits, betting
// structure and the phases a hand can visit. Phase transitions themselves
// live in the variant's flow handler.
type GameRules struct {
	Type       GameType
	MinPlayers int
	MaxPlayers int
	FixedLimit bool
	UsesBlinds bool
	// PotMatching marks variants where losers match the pot, so every
	// player dealt in must be able to cover a carried pot.
	PotMatching bool
	HoleCards   int // cards dealt face-down up front
	Phases      []PhaseDescriptor

	descriptors map[Phase]PhaseDescriptor
}

// Descriptor returns the metadata for a phase this variant can visit
func (r *GameRules) Descriptor(p Phase) (PhaseDescriptor, bool) {
	d, ok := r.descriptors[p]
	return d, ok
}

var bettingActions = []Action{Check, Bet, Call, Raise, Fold, AllIn}

func bettingPhase(p Phase) PhaseDescriptor {
	return PhaseDescriptor{Phase: p, Category: CategoryBetting, RequiresAction: true, Actions: bettingActions}
}

func dealingPhase(p Phase) PhaseDescriptor {
	return PhaseDescriptor{Phase: p, Category: CategoryDealing}
}

func decisionPhase(p Phase, actions ...Action) PhaseDescriptor {
	return PhaseDescriptor{Phase: p, Category: CategoryDrawing, RequiresAction: true, Actions: actions}
}

var (
	antePhase     = PhaseDescriptor{Phase: PhaseCollectingAntes, Category: CategorySetup}
	showdownPhase = PhaseDescriptor{Phase: PhaseShowdown, Category: CategoryResolution}
	completePhase = PhaseDescriptor{Phase: PhaseComplete, Category: CategoryResolution}
)

func newRules(t GameType, minP, maxP, hole int, fixedLimit, blinds bool, phases []PhaseDescriptor) GameRules {
	r := GameRules{
		Type:       t,
		MinPlayers: minP,
		MaxPlayers: maxP,
		FixedLimit: fixedLimit,
		UsesBlinds: blinds,
		HoleCards:  hole,
		Phases:     phases,
	}
	r.descriptors = make(map[Phase]PhaseDescriptor, len(phases))
	for _, d := range phases {
		r.descriptors[d.Phase] = d
	}
	return r
}

var drawPhases = []PhaseDescriptor{
	antePhase,
	dealingPhase(PhaseDealingHand),
	bettingPhase(PhasePreDrawBetting),
	decisionPhase(PhaseDraw, DrawCards),
	bettingPhase(PhasePostDrawBetting),
	showdownPhase,
	completePhase,
}

var studPhases = []PhaseDescriptor{
	antePhase,
	dealingPhase(PhaseThirdStreet),
	bettingPhase(PhaseThirdStreetBetting),
	dealingPhase(PhaseFourthStreet),
	bettingPhase(PhaseFourthStreetBetting),
	dealingPhase(PhaseFifthStreet),
	bettingPhase(PhaseFifthStreetBetting),
	dealingPhase(PhaseSixthStreet),
	bettingPhase(PhaseSixthStreetBetting),
	dealingPhase(PhaseSeventhStreet),
	bettingPhase(PhaseSeventhStreetBetting),
	showdownPhase,
	completePhase,
}

func studPhasesWithBuy() []PhaseDescriptor {
	return append(append([]PhaseDescriptor{}, studPhases...),
		decisionPhase(PhaseBuyCardOffer, BuyCard, DeclineBuy))
}

var communityPhases = []PhaseDescriptor{
	antePhase,
	dealingPhase(PhaseDealingHole),
	bettingPhase(PhasePreflopBetting),
	dealingPhase(PhaseFlop),
	bettingPhase(PhaseFlopBetting),
	dealingPhase(PhaseTurn),
	bettingPhase(PhaseTurnBetting),
	dealingPhase(PhaseRiver),
	bettingPhase(PhaseRiverBetting),
	showdownPhase,
	completePhase,
}

var kingsAndLowsPhases = []PhaseDescriptor{
	antePhase,
	dealingPhase(PhaseDealingHand),
	decisionPhase(PhaseDropOrStay, Drop, Stay),
	decisionPhase(PhaseDraw, DrawCards),
	decisionPhase(PhasePlayerVsDeck, DeckDraw),
	showdownPhase,
	completePhase,
}

// RulesFor returns the variant table. Player maximums are bounded by deck
// size at the deepest possible deal.
func RulesFor(t GameType) (GameRules, error) {
	switch t {
	case GameFiveCardDraw:
		return newRules(t, 2, 6, 5, false, false, drawPhases), nil
	case GameTwosJacksAxe:
		return newRules(t, 2, 6, 5, false, false, drawPhases), nil
	case GameSevenCardStud:
		return newRules(t, 2, 7, 2, true, false, studPhases), nil
	case GameBaseball:
		return newRules(t, 2, 7, 2, true, false, studPhasesWithBuy()), nil
	case GameFollowTheQueen:
		return newRules(t, 2, 7, 2, true, false, studPhases), nil
	case GameTexasHoldem:
		return newRules(t, 2, 10, 2, false, true, communityPhases), nil
	case GameOmaha:
		return newRules(t, 2, 10, 4, false, true, communityPhases), nil
	case GameKingsAndLows:
		r := newRules(t, 2, 7, 5, false, false, kingsAndLowsPhases)
		r.PotMatching = true
		return r, nil
	default:
		return GameRules{}, fmt.Errorf("unknown game type %d", t)
	}
}
