package production

// Category classifies unit designs by battlefield role.
type Category string

const (
	CategoryColony    Category = "COLONY"
	CategoryCombat    Category = "COMBAT"
	CategoryScout     Category = "SCOUT"
	CategorySatellite Category = "SATELLITE"
)

// Categories lists every unit category.
var Categories = []Category{CategoryColony, CategoryCombat, CategoryScout, CategorySatellite}

// Design is a buildable unit blueprint owned by one player. The first build
// of a design pays the prototype cost; later builds pay the production cost.
type Design struct {
	ID       int
	PlayerID int
	Name     string
	Category Category

	PrototypeMoney  int
	PrototypeMetal  int
	ProductionMoney int
	ProductionMetal int

	PrototypeBuilt bool
}

// NextCost returns the money/metal cost of the next build of this design.
func (d *Design) NextCost() (money, metal int) {
	if !d.PrototypeBuilt {
		return d.PrototypeMoney, d.PrototypeMetal
	}
	return d.ProductionMoney, d.ProductionMetal
}

// BuildTurns is how many turns a build of this design occupies the yard.
func (d *Design) BuildTurns() int {
	switch d.Category {
	case CategoryColony:
		return 3
	case CategoryCombat:
		return 2
	default:
		return 1
	}
}

// UnitStats are the fleet-facing numbers a finished unit contributes.
type UnitStats struct {
	Weapons int
	Shields int
	Speed   float64
	Range   float64
}

// Stats returns the stock combat profile of a category. Satellites have no
// drive and never leave their planet.
func (c Category) Stats() UnitStats {
	switch c {
	case CategoryColony:
		return UnitStats{Weapons: 0, Shields: 10, Speed: 4.0, Range: 60.0}
	case CategoryCombat:
		return UnitStats{Weapons: 15, Shields: 10, Speed: 5.0, Range: 80.0}
	case CategoryScout:
		return UnitStats{Weapons: 1, Shields: 2, Speed: 12.0, Range: 150.0}
	default:
		return UnitStats{Weapons: 12, Shields: 20}
	}
}

// DefaultDesign returns the stock blueprint for a category. Created lazily
// for players who own no design in that category.
func DefaultDesign(playerID int, category Category) *Design {
	d := &Design{PlayerID: playerID, Category: category}
	switch category {
	case CategoryColony:
		d.Name = "Colony Ark"
		d.PrototypeMoney, d.PrototypeMetal = 2000, 800
		d.ProductionMoney, d.ProductionMetal = 1200, 500
	case CategoryCombat:
		d.Name = "Line Cruiser"
		d.PrototypeMoney, d.PrototypeMetal = 1500, 600
		d.ProductionMoney, d.ProductionMetal = 900, 400
	case CategoryScout:
		d.Name = "Pathfinder"
		d.PrototypeMoney, d.PrototypeMetal = 600, 200
		d.ProductionMoney, d.ProductionMetal = 350, 120
	case CategorySatellite:
		d.Name = "Orbital Bastion"
		d.PrototypeMoney, d.PrototypeMetal = 1000, 500
		d.ProductionMoney, d.ProductionMetal = 700, 350
	}
	return d
}
