package player

import (
	"fmt"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/economy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// TechDomain identifies one of the six research domains.
type TechDomain string

const (
	TechRange           TechDomain = "RANGE"
	TechSpeed           TechDomain = "SPEED"
	TechWeapons         TechDomain = "WEAPONS"
	TechShields         TechDomain = "SHIELDS"
	TechMiniaturization TechDomain = "MINIATURIZATION"
	TechRadical         TechDomain = "RADICAL"
)

// TechDomains lists every research domain in canonical order.
var TechDomains = []TechDomain{
	TechRange, TechSpeed, TechWeapons, TechShields, TechMiniaturization, TechRadical,
}

// BonusCapable reports whether the domain can carry a temporary bonus.
func (d TechDomain) BonusCapable() bool {
	switch d {
	case TechRange, TechSpeed, TechWeapons, TechShields:
		return true
	}
	return false
}

// DomainState is one research domain's progress for one player.
type DomainState struct {
	Level    int
	Progress float64
	Budget   int

	// Temporary bonus granted by a radical breakthrough. Only meaningful
	// for bonus-capable domains.
	TempBonus    int
	BonusExpires int // turn after which the bonus no longer applies
}

// LevelUpThreshold is the progress needed to gain a level.
const LevelUpThreshold = 100.0

// ResearchPointsPerTurn is the progress a domain gains per turn at 100%
// budget, before diminishing returns.
const ResearchPointsPerTurn = 25.0

// Technology aggregates the six research domains of one player.
type Technology struct {
	PlayerID int
	Domains  map[TechDomain]*DomainState
}

// NewTechnology creates a fresh technology sheet with the default balanced
// budget split (sums to 100).
func NewTechnology(playerID int) *Technology {
	t := &Technology{
		PlayerID: playerID,
		Domains:  make(map[TechDomain]*DomainState, len(TechDomains)),
	}
	defaults := map[TechDomain]int{
		TechRange: 17, TechSpeed: 17, TechWeapons: 17,
		TechShields: 17, TechMiniaturization: 16, TechRadical: 16,
	}
	for _, d := range TechDomains {
		t.Domains[d] = &DomainState{Budget: defaults[d]}
	}
	return t
}

// EffectiveLevel is the base level plus any unexpired temporary bonus.
func (t *Technology) EffectiveLevel(domain TechDomain, currentTurn int) int {
	s, ok := t.Domains[domain]
	if !ok {
		return 0
	}
	level := s.Level
	if s.TempBonus > 0 && currentTurn <= s.BonusExpires {
		level += s.TempBonus
	}
	return level
}

// TotalLevels sums the effective level across all domains.
func (t *Technology) TotalLevels(currentTurn int) int {
	total := 0
	for _, d := range TechDomains {
		total += t.EffectiveLevel(d, currentTurn)
	}
	return total
}

// SetBudgets replaces the budget split. The six percentages must cover every
// domain and sum to exactly 100.
func (t *Technology) SetBudgets(budgets map[TechDomain]int) shared.Result {
	sum := 0
	for _, d := range TechDomains {
		b, ok := budgets[d]
		if !ok {
			return shared.Failure(fmt.Sprintf("missing budget for domain %s", d))
		}
		if b < 0 {
			return shared.Failure(fmt.Sprintf("negative budget for domain %s", d))
		}
		sum += b
	}
	if sum != 100 {
		return shared.Failure(fmt.Sprintf("tech budgets must sum to 100, got %d", sum))
	}
	for d, b := range budgets {
		t.Domains[d].Budget = b
	}
	return shared.Success()
}

// Advance accrues one turn of research progress across all domains and
// returns the domains that completed a level. The radical domain is included
// when it crosses the threshold; the caller decides whether that spawns a
// breakthrough instead of a plain level.
func (t *Technology) Advance() []TechDomain {
	var completed []TechDomain
	for _, d := range TechDomains {
		s := t.Domains[d]
		gained := economy.DiminishingReturns(economy.BudgetFraction(s.Budget), ResearchPointsPerTurn)
		s.Progress += gained
		for s.Progress >= LevelUpThreshold {
			s.Progress -= LevelUpThreshold
			s.Level++
			completed = append(completed, d)
		}
	}
	return completed
}

// GrantBonus applies a temporary level bonus expiring after the given turn.
func (t *Technology) GrantBonus(domain TechDomain, bonus, expiresTurn int) shared.Result {
	if !domain.BonusCapable() {
		return shared.Failure(fmt.Sprintf("domain %s cannot carry a temporary bonus", domain))
	}
	s := t.Domains[domain]
	s.TempBonus = bonus
	s.BonusExpires = expiresTurn
	return shared.Success()
}
