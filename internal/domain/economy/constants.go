package economy

// Tuning constants for the per-turn economic model. These are fixed game
// rules, not configuration.
const (
	// IdealTemperature is the habitability optimum in degrees Celsius.
	IdealTemperature = 22.0

	// IdealGravity is the habitability optimum in g.
	IdealGravity = 1.0

	// TemperatureTolerance is the deviation at which temperature
	// habitability reaches zero.
	TemperatureTolerance = 100.0

	// GravityTolerance is the deviation at which gravity habitability
	// reaches zero.
	GravityTolerance = 2.0

	// MaxPopulationCeiling is the population a perfectly habitable planet
	// can sustain.
	MaxPopulationCeiling = 20_000_000

	// PopulationGrowthRate is the per-turn growth factor at full habitability.
	PopulationGrowthRate = 0.08

	// TerraformStepPerTurn is the temperature change per turn at 100%
	// terraform budget, before diminishing returns.
	TerraformStepPerTurn = 3.0

	// MiningRatePerTurn caps extraction per planet per turn at 100% mining
	// budget.
	MiningRatePerTurn = 200

	// IncomePerPlanet is the flat per-planet income component.
	IncomePerPlanet = 100

	// IncomePerMillionPop is income per million inhabitants.
	IncomePerMillionPop = 9

	// DebtInterestRate is deducted from money every turn: floor(debt * rate).
	DebtInterestRate = 0.05

	// DebtIncomeMultiplier bounds borrowing: max_debt = income * multiplier.
	DebtIncomeMultiplier = 3

	// BankruptcyThreshold eliminates a player whose money falls below it.
	BankruptcyThreshold = -10_000

	// ColonyStartingPopulation is granted to a freshly colonized planet.
	ColonyStartingPopulation = 1_000
)
