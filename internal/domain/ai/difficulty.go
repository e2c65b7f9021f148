package ai

// Tier is a computer player's difficulty level, ordered weakest to strongest.
type Tier string

const (
	TierCadet      Tier = "CADET"
	TierLieutenant Tier = "LIEUTENANT"
	TierCommander  Tier = "COMMANDER"
	TierAdmiral    Tier = "ADMIRAL"
	TierOvermind   Tier = "OVERMIND"
)

// Tiers lists every difficulty tier, weakest first.
var Tiers = []Tier{TierCadet, TierLieutenant, TierCommander, TierAdmiral, TierOvermind}

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	switch t {
	case TierCadet, TierLieutenant, TierCommander, TierAdmiral, TierOvermind:
		return true
	}
	return false
}

// Modifiers bundles the knobs controlling a computer player's competence.
type Modifiers struct {
	// DecisionErrorRate is the probability [0,1] that the player skips its
	// whole decision phase this turn. Models imperfect play, not a failure.
	DecisionErrorRate float64

	// ReactionDelay is how many turns late the player notices threats.
	ReactionDelay int

	// AttackThreshold is the force-superiority ratio required before
	// initiating an attack.
	AttackThreshold float64

	// EconomyEfficiency multiplies budget allocations.
	EconomyEfficiency float64

	CanUseTankers         bool
	CanCoordinateAttacks  bool
	CanUseBiologicals     bool
	UsesPredictiveDefense bool

	// ExplorationPriority in [0,1] gates colonization fleet assignments.
	ExplorationPriority float64

	// TechFocus in [0,1] controls how deliberately research is steered.
	TechFocus float64
}

// profiles is the fixed difficulty table. Values are game rules; tests pin
// them bit-exact.
var profiles = map[Tier]Modifiers{
	TierCadet: {
		DecisionErrorRate:   0.30,
		ReactionDelay:       2,
		AttackThreshold:     2.0,
		EconomyEfficiency:   0.8,
		ExplorationPriority: 0.3,
		TechFocus:           0.3,
	},
	TierLieutenant: {
		DecisionErrorRate:   0.20,
		ReactionDelay:       1,
		AttackThreshold:     1.6,
		EconomyEfficiency:   0.9,
		CanUseTankers:       true,
		ExplorationPriority: 0.4,
		TechFocus:           0.5,
	},
	TierCommander: {
		DecisionErrorRate:    0.10,
		ReactionDelay:        1,
		AttackThreshold:      1.3,
		EconomyEfficiency:    1.0,
		CanUseTankers:        true,
		CanCoordinateAttacks: true,
		ExplorationPriority:  0.6,
		TechFocus:            0.7,
	},
	TierAdmiral: {
		DecisionErrorRate:     0.05,
		ReactionDelay:         0,
		AttackThreshold:       1.0,
		EconomyEfficiency:     1.1,
		CanUseTankers:         true,
		CanCoordinateAttacks:  true,
		UsesPredictiveDefense: true,
		ExplorationPriority:   0.7,
		TechFocus:             0.8,
	},
	TierOvermind: {
		DecisionErrorRate:     0.0,
		ReactionDelay:         0,
		AttackThreshold:       0.8,
		EconomyEfficiency:     1.25,
		CanUseTankers:         true,
		CanCoordinateAttacks:  true,
		CanUseBiologicals:     true,
		UsesPredictiveDefense: true,
		ExplorationPriority:   0.8,
		TechFocus:             0.9,
	},
}

// ProfileFor returns the modifiers for a tier. Unknown tiers fall back to
// the middle tier.
func ProfileFor(tier Tier) Modifiers {
	if m, ok := profiles[tier]; ok {
		return m
	}
	return profiles[TierCommander]
}
