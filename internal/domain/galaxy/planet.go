package galaxy

import (
	"fmt"
	"math"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/economy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// PlanetStatus is the lifecycle state of a planet.
type PlanetStatus string

const (
	PlanetUnexplored PlanetStatus = "UNEXPLORED"
	PlanetExplored   PlanetStatus = "EXPLORED"
	PlanetColonized  PlanetStatus = "COLONIZED"
	PlanetDeveloped  PlanetStatus = "DEVELOPED"
	PlanetHostile    PlanetStatus = "HOSTILE"
	PlanetAbandoned  PlanetStatus = "ABANDONED"
)

// Planet is one body in the galaxy.
//
// Invariants:
//   - 0 <= MetalRemaining <= MetalReserves
//   - 0 <= Population <= MaxPopulation
//   - MaxPopulation is recomputed whenever CurrentTemperature changes
type Planet struct {
	ID       int
	GameID   int
	Name     string
	Position shared.Position

	// Fixed physical traits, set once by the galaxy generator.
	Temperature   float64 // natural surface temperature
	Gravity       float64
	MetalReserves int

	// Mutable traits.
	CurrentTemperature float64
	MetalRemaining     int
	Population         int
	MaxPopulation      int

	OwnerID *int
	Status  PlanetStatus

	// Per-planet budget split, must sum to 100.
	TerraformBudget int
	MiningBudget    int
	ShipsBudget     int
}

// DefaultBudgetSplit is applied at colonization: terraform/mining/ships.
var DefaultBudgetSplit = [3]int{34, 33, 33}

// NewPlanet creates an unexplored planet from generator output.
func NewPlanet(gameID int, name string, pos shared.Position, temperature, gravity float64, metalReserves int) *Planet {
	p := &Planet{
		GameID:             gameID,
		Name:               name,
		Position:           pos,
		Temperature:        temperature,
		Gravity:            gravity,
		MetalReserves:      metalReserves,
		CurrentTemperature: temperature,
		MetalRemaining:     metalReserves,
		Status:             PlanetUnexplored,
	}
	p.RecomputeMaxPopulation()
	return p
}

// IsColony reports whether the planet is colonized or developed.
func (p *Planet) IsColony() bool {
	return p.Status == PlanetColonized || p.Status == PlanetDeveloped
}

// IsOwnedBy reports whether playerID currently owns the planet.
func (p *Planet) IsOwnedBy(playerID int) bool {
	return p.OwnerID != nil && *p.OwnerID == playerID
}

// Habitability scores the planet in [0,1] from its deviation from the ideal
// temperature and gravity.
func (p *Planet) Habitability() float64 {
	tempScore := 1 - math.Abs(p.CurrentTemperature-economy.IdealTemperature)/economy.TemperatureTolerance
	gravScore := 1 - math.Abs(p.Gravity-economy.IdealGravity)/economy.GravityTolerance
	if tempScore < 0 {
		tempScore = 0
	}
	if gravScore < 0 {
		gravScore = 0
	}
	return tempScore * gravScore
}

// RecomputeMaxPopulation derives the population ceiling from habitability.
// Must be called after every CurrentTemperature change.
func (p *Planet) RecomputeMaxPopulation() {
	p.MaxPopulation = int(float64(economy.MaxPopulationCeiling) * p.Habitability())
	if p.Population > p.MaxPopulation {
		p.Population = p.MaxPopulation
	}
}

// SetBudgets replaces the budget split, enforcing the sum-to-100 invariant.
func (p *Planet) SetBudgets(terraform, mining, ships int) shared.Result {
	if terraform < 0 || mining < 0 || ships < 0 {
		return shared.Failure("budgets cannot be negative")
	}
	if terraform+mining+ships != 100 {
		return shared.Failure(fmt.Sprintf("planet budgets must sum to 100, got %d", terraform+mining+ships))
	}
	p.TerraformBudget = terraform
	p.MiningBudget = mining
	p.ShipsBudget = ships
	return shared.Success()
}

// Terraform moves the surface temperature toward the ideal by a
// budget-scaled step, never overshooting, and recomputes the population
// ceiling. Returns the temperature delta applied.
func (p *Planet) Terraform() float64 {
	if !p.IsColony() {
		return 0
	}
	step := economy.DiminishingReturns(economy.BudgetFraction(p.TerraformBudget), economy.TerraformStepPerTurn)
	if step <= 0 {
		return 0
	}
	gap := economy.IdealTemperature - p.CurrentTemperature
	if gap == 0 {
		return 0
	}
	if math.Abs(gap) < step {
		step = math.Abs(gap)
	}
	delta := math.Copysign(step, gap)
	p.CurrentTemperature += delta
	p.RecomputeMaxPopulation()
	return delta
}

// Mine extracts metal bounded by both the budget-derived rate and the
// remaining reserves, decrementing MetalRemaining. Returns the units
// extracted; crediting the owner's stock is the caller's job.
func (p *Planet) Mine() int {
	if !p.IsColony() || p.MetalRemaining <= 0 {
		return 0
	}
	rate := int(economy.DiminishingReturns(economy.BudgetFraction(p.MiningBudget), economy.MiningRatePerTurn))
	if rate > p.MetalRemaining {
		rate = p.MetalRemaining
	}
	p.MetalRemaining -= rate
	return rate
}

// GrowPopulation applies one turn of habitability-scaled growth, bounded by
// MaxPopulation. Returns the growth applied.
func (p *Planet) GrowPopulation() int {
	if !p.IsColony() || p.Population <= 0 {
		return 0
	}
	growth := int(float64(p.Population) * economy.PopulationGrowthRate * p.Habitability())
	if p.Population+growth > p.MaxPopulation {
		growth = p.MaxPopulation - p.Population
	}
	if growth < 0 {
		growth = 0
	}
	p.Population += growth
	return growth
}

// MarkExplored reveals an unexplored planet.
func (p *Planet) MarkExplored() {
	if p.Status == PlanetUnexplored {
		p.Status = PlanetExplored
	}
}

// Colonize turns an unowned planet into a fresh colony for ownerID with the
// starting population and the default budget split.
func (p *Planet) Colonize(ownerID int) shared.Result {
	if p.IsColony() {
		return shared.Failure(fmt.Sprintf("planet %s is already colonized", p.Name))
	}
	if p.Status == PlanetHostile {
		return shared.Failure(fmt.Sprintf("planet %s is hostile", p.Name))
	}
	p.OwnerID = &ownerID
	p.Status = PlanetColonized
	p.Population = economy.ColonyStartingPopulation
	p.TerraformBudget = DefaultBudgetSplit[0]
	p.MiningBudget = DefaultBudgetSplit[1]
	p.ShipsBudget = DefaultBudgetSplit[2]
	p.RecomputeMaxPopulation()
	if p.Population > p.MaxPopulation {
		p.Population = p.MaxPopulation
	}
	return shared.Success()
}

// PrepareAsHomeworld sets up a player's starting planet: developed status,
// near-ideal climate and an established population.
func (p *Planet) PrepareAsHomeworld(ownerID int) {
	p.OwnerID = &ownerID
	p.Status = PlanetDeveloped
	p.CurrentTemperature = economy.IdealTemperature
	p.RecomputeMaxPopulation()
	p.Population = p.MaxPopulation / 4
	p.TerraformBudget = DefaultBudgetSplit[0]
	p.MiningBudget = DefaultBudgetSplit[1]
	p.ShipsBudget = DefaultBudgetSplit[2]
}

// Release clears ownership after elimination or abandonment: the planet
// becomes ownerless and abandoned with its population zeroed. Idempotent.
func (p *Planet) Release() {
	p.OwnerID = nil
	p.Status = PlanetAbandoned
	p.Population = 0
}
