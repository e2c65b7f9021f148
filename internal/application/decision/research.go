package decision

import (
	"math/rand"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

// Phase-dependent base research splits. Order: range, speed, weapons,
// shields, miniaturization, radical. Each sums to 100.
var researchPresets = map[game.Phase]map[player.TechDomain]int{
	game.PhaseEarly: {
		player.TechRange: 25, player.TechSpeed: 20, player.TechWeapons: 10,
		player.TechShields: 10, player.TechMiniaturization: 15, player.TechRadical: 20,
	},
	game.PhaseMid: {
		player.TechRange: 15, player.TechSpeed: 15, player.TechWeapons: 20,
		player.TechShields: 20, player.TechMiniaturization: 15, player.TechRadical: 15,
	},
	game.PhaseLate: {
		player.TechRange: 10, player.TechSpeed: 10, player.TechWeapons: 25,
		player.TechShields: 25, player.TechMiniaturization: 10, player.TechRadical: 20,
	},
}

// AllocateResearch computes the six-domain research split for one turn:
// phase preset, situational adjustments, optional jitter, renormalized to
// exactly 100 with the residual assigned to speed (always useful).
func AllocateResearch(a *analysis.GameAnalysis, mods ai.Modifiers, rng *rand.Rand) map[player.TechDomain]int {
	alloc := make(map[player.TechDomain]int, len(player.TechDomains))
	for d, v := range researchPresets[a.Phase] {
		alloc[d] = v
	}

	if a.NeedsExpansion {
		alloc[player.TechRange] += 10
		alloc[player.TechWeapons] -= 5
		alloc[player.TechShields] -= 5
	}
	if a.UnderThreat() {
		alloc[player.TechWeapons] += 10
		alloc[player.TechRange] -= 5
		alloc[player.TechMiniaturization] -= 5
	}

	// Less focused players drift a little every turn.
	if mods.TechFocus < 0.8 {
		for _, d := range player.TechDomains {
			alloc[d] += rng.Intn(11) - 5
		}
	}

	return normalizeResearch(alloc)
}

// normalizeResearch clamps negatives and rescales so the six budgets sum to
// exactly 100, giving any rounding residual to the speed domain.
func normalizeResearch(alloc map[player.TechDomain]int) map[player.TechDomain]int {
	total := 0
	for _, d := range player.TechDomains {
		if alloc[d] < 0 {
			alloc[d] = 0
		}
		total += alloc[d]
	}
	if total == 0 {
		alloc[player.TechSpeed] = 100
		return alloc
	}

	sum := 0
	for _, d := range player.TechDomains {
		alloc[d] = alloc[d] * 100 / total
		sum += alloc[d]
	}
	alloc[player.TechSpeed] += 100 - sum
	return alloc
}
