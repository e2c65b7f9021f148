package player_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

func TestNewPlayers_StartingStocks(t *testing.T) {
	human := player.NewHumanPlayer(1, "Ripley", "blue")
	assert.Equal(t, player.StartingMoney, human.Money)
	assert.Equal(t, player.StartingMetal, human.Metal)
	assert.False(t, human.IsComputer)
	assert.Nil(t, human.Difficulty)

	computer := player.NewComputerPlayer(1, "Borg", "red", ai.TierAdmiral)
	assert.True(t, computer.IsComputer)
	require.NotNil(t, computer.Difficulty)
	assert.Equal(t, ai.TierAdmiral, *computer.Difficulty)
}

func TestBorrow_RespectsDebtCeiling(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	income := 1000 // max debt 3000

	result := p.Borrow(2500, income)
	assert.True(t, result.OK)
	assert.Equal(t, 2500, p.Debt)
	assert.Equal(t, player.StartingMoney+2500, p.Money)

	// 2500 + 600 exceeds 3000; nothing changes
	result = p.Borrow(600, income)
	assert.False(t, result.OK)
	assert.Equal(t, 2500, p.Debt)
	assert.Equal(t, player.StartingMoney+2500, p.Money)

	result = p.Borrow(500, income)
	assert.True(t, result.OK)
	assert.Equal(t, 3000, p.Debt)
}

func TestBorrow_RejectsNonPositiveAmount(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	assert.False(t, p.Borrow(0, 1000).OK)
	assert.False(t, p.Borrow(-50, 1000).OK)
	assert.Equal(t, 0, p.Debt)
}

func TestRepay_CappedByDebtAndMoney(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	p.Borrow(1000, 1000)

	// over-repay clamps to outstanding debt
	result := p.Repay(5000)
	assert.True(t, result.OK)
	assert.Equal(t, 0, p.Debt)
	assert.Equal(t, player.StartingMoney, p.Money)

	p.Borrow(3000, 1000)
	p.Money = 100
	result = p.Repay(3000)
	assert.False(t, result.OK)
	assert.Equal(t, 3000, p.Debt)
	assert.Equal(t, 100, p.Money)
}

func TestPayInterest_FloorsAndDeducts(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	assert.Equal(t, 0, p.PayInterest())

	p.Debt = 1025 // floor(1025 * 0.05) = 51
	interest := p.PayInterest()
	assert.Equal(t, 51, interest)
	assert.Equal(t, player.StartingMoney-51, p.Money)
	assert.Equal(t, 1025, p.Debt)
}

func TestSpend_AtomicOnFailure(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	p.Money, p.Metal = 100, 50

	result := p.Spend(200, 10)
	assert.False(t, result.OK)
	assert.Equal(t, 100, p.Money)
	assert.Equal(t, 50, p.Metal)

	result = p.Spend(80, 60)
	assert.False(t, result.OK)
	assert.Equal(t, 100, p.Money)
	assert.Equal(t, 50, p.Metal)

	result = p.Spend(80, 40)
	assert.True(t, result.OK)
	assert.Equal(t, 20, p.Money)
	assert.Equal(t, 10, p.Metal)
}

func TestIsBankrupt_ThresholdIsStrict(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")

	p.Money = -10_000
	assert.False(t, p.IsBankrupt())

	p.Money = -10_001
	assert.True(t, p.IsBankrupt())
}

func TestEliminate_IsIdempotent(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	p.PlanetCount = 3

	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p.Eliminate(first)
	require.True(t, p.Eliminated)
	assert.Equal(t, 0, p.PlanetCount)
	assert.Equal(t, first, *p.EliminatedAt)

	// a second elimination keeps the original timestamp
	p.Eliminate(first.Add(48 * time.Hour))
	assert.Equal(t, first, *p.EliminatedAt)
}

func TestProfile_FallsBackForHumans(t *testing.T) {
	p := player.NewHumanPlayer(1, "a", "")
	assert.Equal(t, ai.ProfileFor(ai.TierCommander), p.Profile())

	c := player.NewComputerPlayer(1, "b", "", ai.TierOvermind)
	assert.Equal(t, ai.ProfileFor(ai.TierOvermind), c.Profile())
}
