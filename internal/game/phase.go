package game

// Phase identifies a point in a hand's lifecycle. The enum is the union of
// all variant phases; each variant's GameRules declares the ordered subset
// it actually visits.
type Phase int

const (
	PhaseWaitingToStart Phase = iota
	PhaseCollectingAntes

	// Community-card games
	PhaseDealingHole
	PhasePreflopBetting
	PhaseFlop
	PhaseFlopBetting
	PhaseTurn
	PhaseTurnBetting
	PhaseRiver
	PhaseRiverBetting

	// Draw games
	PhaseDealingHand
	PhasePreDrawBetting
	PhaseDraw
	PhasePostDrawBetting

	// Stud games
	PhaseThirdStreet
	PhaseThirdStreetBetting
	PhaseFourthStreet
	PhaseFourthStreetBetting
	PhaseFifthStreet
	PhaseFifthStreetBetting
	PhaseSixthStreet
	PhaseSixthStreetBetting
	PhaseSeventhStreet
	PhaseSeventhStreetBetting

	// Variant-specific decision phases
	PhaseBuyCardOffer
	PhaseDropOrStay
	PhasePlayerVsDeck

	PhaseShowdown
	PhaseComplete
)

var phaseNames = map[Phase]string{
	PhaseWaitingToStart:       "waiting-to-start",
	PhaseCollectingAntes:      "collecting-antes",
	PhaseDealingHole:          "dealing-hole",
	PhasePreflopBetting:       "preflop-betting",
	PhaseFlop:                 "flop",
	PhaseFlopBetting:          "flop-betting",
	PhaseTurn:                 "turn",
	PhaseTurnBetting:          "turn-betting",
	PhaseRiver:                "river",
	PhaseRiverBetting:         "river-betting",
	PhaseDealingHand:          "dealing-hand",
	PhasePreDrawBetting:       "pre-draw-betting",
	PhaseDraw:                 "draw",
	PhasePostDrawBetting:      "post-draw-betting",
	PhaseThirdStreet:          "third-street",
	PhaseThirdStreetBetting:   "third-street-betting",
	PhaseFourthStreet:         "fourth-street",
	PhaseFourthStreetBetting:  "fourth-street-betting",
	PhaseFifthStreet:          "fifth-street",
	PhaseFifthStreetBetting:   "fifth-street-betting",
	PhaseSixthStreet:          "sixth-street",
	PhaseSixthStreetBetting:   "sixth-street-betting",
	PhaseSeventhStreet:        "seventh-street",
	PhaseSeventhStreetBetting: "seventh-street-betting",
	PhaseBuyCardOffer:         "buy-card-offer",
	PhaseDropOrStay:           "drop-or-stay",
	PhasePlayerVsDeck:         "player-vs-deck",
	PhaseShowdown:             "showdown",
	PhaseComplete:             "complete",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// PhaseCategory classifies a phase for the generic progression machinery
type PhaseCategory int

const (
	CategorySetup PhaseCategory = iota
	CategoryDealing
	CategoryBetting
	CategoryDrawing
	CategoryResolution
)

// PhaseDescriptor is the static metadata for one phase of a variant
type PhaseDescriptor struct {
	Phase          Phase
	Category       PhaseCategory
	RequiresAction bool
	Actions        []Action
}
