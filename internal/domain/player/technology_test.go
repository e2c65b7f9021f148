package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

func TestNewTechnology_DefaultBudgetsSumTo100(t *testing.T) {
	tech := player.NewTechnology(1)

	sum := 0
	for _, d := range player.TechDomains {
		require.Contains(t, tech.Domains, d)
		sum += tech.Domains[d].Budget
	}
	assert.Equal(t, 100, sum)
}

func TestSetBudgets_EnforcesExactSum(t *testing.T) {
	tech := player.NewTechnology(1)

	budgets := map[player.TechDomain]int{
		player.TechRange: 25, player.TechSpeed: 20, player.TechWeapons: 10,
		player.TechShields: 10, player.TechMiniaturization: 15, player.TechRadical: 20,
	}
	assert.True(t, tech.SetBudgets(budgets).OK)
	assert.Equal(t, 25, tech.Domains[player.TechRange].Budget)

	budgets[player.TechRange] = 30 // sum 105
	result := tech.SetBudgets(budgets)
	assert.False(t, result.OK)
	// rejected split leaves the previous one in place
	assert.Equal(t, 25, tech.Domains[player.TechRange].Budget)
}

func TestSetBudgets_RejectsMissingOrNegativeDomain(t *testing.T) {
	tech := player.NewTechnology(1)

	missing := map[player.TechDomain]int{
		player.TechRange: 50, player.TechSpeed: 50,
	}
	assert.False(t, tech.SetBudgets(missing).OK)

	negative := map[player.TechDomain]int{
		player.TechRange: 120, player.TechSpeed: -20, player.TechWeapons: 0,
		player.TechShields: 0, player.TechMiniaturization: 0, player.TechRadical: 0,
	}
	assert.False(t, tech.SetBudgets(negative).OK)
}

func TestAdvance_AccruesDiminishedProgressAndLevels(t *testing.T) {
	tech := player.NewTechnology(1)

	// 100% range budget yields the full 25 points per turn
	tech.SetBudgets(map[player.TechDomain]int{
		player.TechRange: 100, player.TechSpeed: 0, player.TechWeapons: 0,
		player.TechShields: 0, player.TechMiniaturization: 0, player.TechRadical: 0,
	})

	for turn := 0; turn < 3; turn++ {
		assert.Empty(t, tech.Advance())
	}
	// 4th turn crosses the 100-point threshold
	completed := tech.Advance()
	require.Equal(t, []player.TechDomain{player.TechRange}, completed)
	assert.Equal(t, 1, tech.Domains[player.TechRange].Level)
	assert.InDelta(t, 0.0, tech.Domains[player.TechRange].Progress, 1e-9)

	// domains with zero budget never progress
	assert.Equal(t, 0.0, tech.Domains[player.TechSpeed].Progress)
}

func TestEffectiveLevel_TemporaryBonusExpires(t *testing.T) {
	tech := player.NewTechnology(1)
	tech.Domains[player.TechWeapons].Level = 3

	result := tech.GrantBonus(player.TechWeapons, 2, 10)
	require.True(t, result.OK)

	assert.Equal(t, 5, tech.EffectiveLevel(player.TechWeapons, 10))
	assert.Equal(t, 3, tech.EffectiveLevel(player.TechWeapons, 11))
}

func TestGrantBonus_OnlyBonusCapableDomains(t *testing.T) {
	tech := player.NewTechnology(1)
	assert.False(t, tech.GrantBonus(player.TechRadical, 1, 5).OK)
	assert.False(t, tech.GrantBonus(player.TechMiniaturization, 1, 5).OK)
	assert.True(t, tech.GrantBonus(player.TechSpeed, 1, 5).OK)
}
