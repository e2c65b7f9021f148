package decision

import (
	"math"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/economy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
)

// PlanetBudget is a terraform/mining/ships split summing to 100.
type PlanetBudget struct {
	Terraform int
	Mining    int
	Ships     int
}

// AllocatePlanetBudget picks a split for one owned planet from its
// temperature deficit and metal abundance, biased toward ships in the late
// phase and for vulnerable planets, scaled by the player's economy
// efficiency, then clamped and renormalized to 100.
func AllocatePlanetBudget(p *galaxy.Planet, phase game.Phase, vulnerable bool, mods ai.Modifiers) PlanetBudget {
	deficit := math.Abs(p.CurrentTemperature - economy.IdealTemperature)

	var b PlanetBudget
	switch {
	case deficit > 30:
		b = PlanetBudget{Terraform: 60, Mining: 20, Ships: 20}
	case deficit > 15:
		b = PlanetBudget{Terraform: 45, Mining: 30, Ships: 25}
	case p.MetalRemaining > 3000:
		b = PlanetBudget{Terraform: 20, Mining: 50, Ships: 30}
	case p.MetalRemaining < 500:
		b = PlanetBudget{Terraform: 30, Mining: 10, Ships: 60}
	default:
		b = PlanetBudget{Terraform: 34, Mining: 33, Ships: 33}
	}

	if phase == game.PhaseLate || vulnerable {
		b.Terraform -= 5
		b.Mining -= 5
		b.Ships += 10
	}

	// Efficient economies push the productive budgets harder; terraforming
	// absorbs the difference after renormalization.
	b.Mining = int(float64(b.Mining) * mods.EconomyEfficiency)
	b.Ships = int(float64(b.Ships) * mods.EconomyEfficiency)

	return normalizeBudget(b)
}

func normalizeBudget(b PlanetBudget) PlanetBudget {
	if b.Terraform < 0 {
		b.Terraform = 0
	}
	if b.Mining < 0 {
		b.Mining = 0
	}
	if b.Ships < 0 {
		b.Ships = 0
	}
	total := b.Terraform + b.Mining + b.Ships
	if total == 0 {
		return PlanetBudget{Terraform: 34, Mining: 33, Ships: 33}
	}
	b.Terraform = b.Terraform * 100 / total
	b.Mining = b.Mining * 100 / total
	b.Ships = b.Ships * 100 / total
	b.Terraform += 100 - (b.Terraform + b.Mining + b.Ships)
	return b
}
