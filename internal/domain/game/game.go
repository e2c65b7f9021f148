package game

import (
	"time"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// Status represents the lifecycle state of a game
type Status string

const (
	// StatusLobby indicates the game accepts new players and has not started
	StatusLobby Status = "LOBBY"

	// StatusRunning indicates turns are being played
	StatusRunning Status = "RUNNING"

	// StatusFinished indicates the game ended (victory or draw)
	StatusFinished Status = "FINISHED"
)

// Outcome records how a finished game ended
type Outcome string

const (
	OutcomeVictory Outcome = "VICTORY"
	OutcomeDraw    Outcome = "DRAW"
)

// Game is the aggregate root for one match: the turn counter, the in-game
// calendar and the lifecycle state every other entity hangs off.
type Game struct {
	ID        int
	Name      string
	Status    Status
	Turn      int
	Year      int
	StartYear int
	WinnerID  *int
	Outcome   *Outcome
	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
}

// YearsPerTurn is how far the in-game calendar advances each turn.
const YearsPerTurn = 1

// NewGame creates a game in the lobby state.
func NewGame(name string, startYear int, now time.Time) *Game {
	return &Game{
		Name:      name,
		Status:    StatusLobby,
		Turn:      0,
		Year:      startYear,
		StartYear: startYear,
		CreatedAt: now,
	}
}

// Start transitions the game from lobby to running.
func (g *Game) Start(now time.Time) error {
	if g.Status != StatusLobby {
		return shared.NewPreconditionError("game %d cannot start: status is %s", g.ID, g.Status)
	}
	g.Status = StatusRunning
	g.StartedAt = &now
	return nil
}

// IsRunning reports whether turns can be processed.
func (g *Game) IsRunning() bool {
	return g.Status == StatusRunning
}

// AdvanceTurn increments the turn counter and the in-game year.
func (g *Game) AdvanceTurn() {
	g.Turn++
	g.Year += YearsPerTurn
}

// FinishWithWinner records a victory and closes the game.
func (g *Game) FinishWithWinner(winnerID int, now time.Time) error {
	if g.Status != StatusRunning {
		return shared.NewPreconditionError("game %d cannot finish: status is %s", g.ID, g.Status)
	}
	outcome := OutcomeVictory
	g.Status = StatusFinished
	g.WinnerID = &winnerID
	g.Outcome = &outcome
	g.EndedAt = &now
	return nil
}

// FinishAsDraw closes the game with no winner.
func (g *Game) FinishAsDraw(now time.Time) error {
	if g.Status != StatusRunning {
		return shared.NewPreconditionError("game %d cannot finish: status is %s", g.ID, g.Status)
	}
	outcome := OutcomeDraw
	g.Status = StatusFinished
	g.Outcome = &outcome
	g.EndedAt = &now
	return nil
}

// Phase is a coarse game-age classification derived from the turn counter,
// used to bias AI heuristics.
type Phase string

const (
	PhaseEarly Phase = "EARLY"
	PhaseMid   Phase = "MID"
	PhaseLate  Phase = "LATE"
)

// PhaseForTurn buckets a turn counter into early (< 20), mid (< 50) or late.
func PhaseForTurn(turn int) Phase {
	switch {
	case turn < 20:
		return PhaseEarly
	case turn < 50:
		return PhaseMid
	default:
		return PhaseLate
	}
}
