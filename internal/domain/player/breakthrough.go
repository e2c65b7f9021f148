package player

import (
	"fmt"
	"math/rand"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// BreakthroughStatus is the lifecycle state of a radical breakthrough.
type BreakthroughStatus string

const (
	BreakthroughPending  BreakthroughStatus = "PENDING"
	BreakthroughResolved BreakthroughStatus = "RESOLVED"
)

// BreakthroughOption is one candidate unlock: a temporary level bonus in a
// bonus-capable domain.
type BreakthroughOption struct {
	Domain   TechDomain
	Bonus    int
	Duration int // turns the bonus lasts once unlocked
}

// OptionCount is the fixed number of candidates per breakthrough.
const OptionCount = 4

// Breakthrough is a radical-research event: four candidate unlocks are
// offered, the player (or AI) eliminates one, and one of the remaining three
// is granted at random.
//
// State machine: PENDING until both the elimination and the random unlock
// are recorded, then RESOLVED (terminal).
type Breakthrough struct {
	ID          int
	PlayerID    int
	CreatedTurn int
	Status      BreakthroughStatus
	Options     [OptionCount]BreakthroughOption
	Eliminated  int // option index, -1 while undecided
	Unlocked    int // option index, -1 while undecided
}

// NewBreakthrough creates a pending breakthrough from four candidates.
func NewBreakthrough(playerID, turn int, options [OptionCount]BreakthroughOption) *Breakthrough {
	return &Breakthrough{
		PlayerID:    playerID,
		CreatedTurn: turn,
		Status:      BreakthroughPending,
		Options:     options,
		Eliminated:  -1,
		Unlocked:    -1,
	}
}

// RollOptions generates four candidates, one per bonus-capable domain, with
// randomized strength.
func RollOptions(rng *rand.Rand) [OptionCount]BreakthroughOption {
	var options [OptionCount]BreakthroughOption
	domains := []TechDomain{TechRange, TechSpeed, TechWeapons, TechShields}
	for i, d := range domains {
		options[i] = BreakthroughOption{
			Domain:   d,
			Bonus:    1 + rng.Intn(3),
			Duration: 5 + rng.Intn(10),
		}
	}
	return options
}

// Eliminate records the discarded option. Fails when already resolved or the
// index is out of range.
func (b *Breakthrough) Eliminate(optionIndex int) shared.Result {
	if b.Status != BreakthroughPending {
		return shared.Failure("breakthrough is already resolved")
	}
	if optionIndex < 0 || optionIndex >= OptionCount {
		return shared.Failure(fmt.Sprintf("option index %d out of range", optionIndex))
	}
	b.Eliminated = optionIndex
	return shared.Success()
}

// Resolve picks one of the three remaining options uniformly at random and
// moves the breakthrough to its terminal state. The elimination choice must
// be recorded first.
func (b *Breakthrough) Resolve(rng *rand.Rand) (BreakthroughOption, error) {
	if b.Status != BreakthroughPending {
		return BreakthroughOption{}, shared.NewPreconditionError("breakthrough %d is already resolved", b.ID)
	}
	if b.Eliminated < 0 {
		return BreakthroughOption{}, shared.NewPreconditionError("breakthrough %d has no eliminated option", b.ID)
	}
	remaining := make([]int, 0, OptionCount-1)
	for i := 0; i < OptionCount; i++ {
		if i != b.Eliminated {
			remaining = append(remaining, i)
		}
	}
	b.Unlocked = remaining[rng.Intn(len(remaining))]
	b.Status = BreakthroughResolved
	return b.Options[b.Unlocked], nil
}
