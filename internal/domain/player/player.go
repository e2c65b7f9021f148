package player

import (
	"fmt"
	"math"
	"time"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/economy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// Player represents one participant in a game, human or computer-controlled.
//
// Invariants:
//   - Debt >= 0 at all times
//   - Money may go negative; below economy.BankruptcyThreshold the player is
//     eliminated on the next turn resolution
//   - Elimination is terminal
type Player struct {
	ID            int
	GameID        int
	Name          string
	Color         string
	IsComputer    bool
	Difficulty    *ai.Tier // nil for human players
	Money         int
	Metal         int
	Debt          int
	PlanetCount   int
	Eliminated    bool
	EliminatedAt  *time.Time
	TurnSubmitted bool
}

// NewHumanPlayer creates a human participant with starting stocks.
func NewHumanPlayer(gameID int, name, color string) *Player {
	return &Player{
		GameID: gameID,
		Name:   name,
		Color:  color,
		Money:  StartingMoney,
		Metal:  StartingMetal,
	}
}

// NewComputerPlayer creates a computer participant at the given difficulty.
func NewComputerPlayer(gameID int, name, color string, tier ai.Tier) *Player {
	return &Player{
		GameID:     gameID,
		Name:       name,
		Color:      color,
		IsComputer: true,
		Difficulty: &tier,
		Money:      StartingMoney,
		Metal:      StartingMetal,
	}
}

// Starting stocks granted at game join.
const (
	StartingMoney = 5_000
	StartingMetal = 1_000
)

// IsActive reports whether the player still takes part in the game.
func (p *Player) IsActive() bool {
	return !p.Eliminated
}

// Profile returns the difficulty modifiers for a computer player, falling
// back to the middle tier when no difficulty is set.
func (p *Player) Profile() ai.Modifiers {
	if p.Difficulty == nil {
		return ai.ProfileFor(ai.TierCommander)
	}
	return ai.ProfileFor(*p.Difficulty)
}

// MaxDebt bounds borrowing to a multiple of the player's current income.
func (p *Player) MaxDebt(income int) int {
	return income * economy.DebtIncomeMultiplier
}

// Borrow adds to debt and money. Borrowing above MaxDebt fails with no state
// change.
func (p *Player) Borrow(amount, income int) shared.Result {
	if amount <= 0 {
		return shared.Failure("borrow amount must be positive")
	}
	maxDebt := p.MaxDebt(income)
	if p.Debt+amount > maxDebt {
		return shared.Failure(fmt.Sprintf("borrowing %d would exceed max debt %d", amount, maxDebt))
	}
	p.Debt += amount
	p.Money += amount
	return shared.Success()
}

// Repay reduces debt by up to amount, capped by available money and the
// outstanding debt.
func (p *Player) Repay(amount int) shared.Result {
	if amount <= 0 {
		return shared.Failure("repay amount must be positive")
	}
	if amount > p.Debt {
		amount = p.Debt
	}
	if amount > p.Money {
		return shared.Failure(fmt.Sprintf("cannot repay %d with %d money", amount, p.Money))
	}
	p.Debt -= amount
	p.Money -= amount
	return shared.Success()
}

// PayInterest deducts floor(debt * rate) from money and returns the amount.
func (p *Player) PayInterest() int {
	if p.Debt <= 0 {
		return 0
	}
	interest := int(math.Floor(float64(p.Debt) * economy.DebtInterestRate))
	p.Money -= interest
	return interest
}

// CreditIncome adds income to money and returns the amount.
func (p *Player) CreditIncome(income int) int {
	p.Money += income
	return income
}

// CreditMetal adds extracted metal to the player's stock.
func (p *Player) CreditMetal(amount int) {
	if amount > 0 {
		p.Metal += amount
	}
}

// Spend deducts a build cost, failing without state change when stocks are
// insufficient.
func (p *Player) Spend(money, metal int) shared.Result {
	if money > p.Money {
		return shared.Failure(fmt.Sprintf("insufficient money: need %d, have %d", money, p.Money))
	}
	if metal > p.Metal {
		return shared.Failure(fmt.Sprintf("insufficient metal: need %d, have %d", metal, p.Metal))
	}
	p.Money -= money
	p.Metal -= metal
	return shared.Success()
}

// IsBankrupt reports whether money has fallen below the elimination threshold.
func (p *Player) IsBankrupt() bool {
	return p.Money < economy.BankruptcyThreshold
}

// Eliminate marks the player out of the game. Idempotent.
func (p *Player) Eliminate(now time.Time) {
	if p.Eliminated {
		return
	}
	p.Eliminated = true
	p.EliminatedAt = &now
	p.PlanetCount = 0
}

// SubmitTurn flags the player as ready for turn resolution.
func (p *Player) SubmitTurn() {
	p.TurnSubmitted = true
}

// ResetTurnSubmission clears the flag after a turn is resolved.
func (p *Player) ResetTurnSubmission() {
	p.TurnSubmitted = false
}
