package decision

import (
	"math/rand"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

// ChooseElimination picks which breakthrough option to discard. Focused
// players (tech_focus > 0.7) score options by current need and discard the
// least useful; everyone else discards uniformly at random.
func ChooseElimination(b *player.Breakthrough, a *analysis.GameAnalysis, mods ai.Modifiers, rng *rand.Rand) int {
	if mods.TechFocus <= 0.7 {
		return rng.Intn(player.OptionCount)
	}

	worst := 0
	worstScore := optionScore(b.Options[0], a)
	for i := 1; i < player.OptionCount; i++ {
		if s := optionScore(b.Options[i], a); s < worstScore {
			worst = i
			worstScore = s
		}
	}
	return worst
}

// optionScore weights an option by how much its domain matters right now.
func optionScore(opt player.BreakthroughOption, a *analysis.GameAnalysis) float64 {
	score := float64(opt.Bonus) * float64(opt.Duration)

	switch opt.Domain {
	case player.TechRange:
		if len(a.ColonizationTargets) == 0 {
			// Nowhere to go: extra range is wasted.
			score *= 0.3
		} else if a.NeedsExpansion {
			score *= 1.5
		}
	case player.TechWeapons:
		if a.MilitaryAdvantage() > 2.0 {
			score *= 0.5
		}
	case player.TechShields:
		if a.UnderThreat() {
			score *= 2.0
		}
	}
	return score
}
