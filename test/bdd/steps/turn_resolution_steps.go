package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	expansionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

type turnResolutionContext struct {
	gameRepo   *helpers.MockGameRepository
	playerRepo *helpers.MockPlayerRepository
	planetRepo *helpers.MockPlanetRepository
	techRepo   *helpers.MockTechnologyRepository

	processTurn  *commands.ProcessTurnHandler
	checkVictory *commands.CheckVictoryHandler

	game     *game.Game
	players  map[string]*player.Player
	colonies map[string]int
}

func (tc *turnResolutionContext) reset() {
	tc.gameRepo = helpers.NewMockGameRepository()
	tc.playerRepo = helpers.NewMockPlayerRepository()
	tc.planetRepo = helpers.NewMockPlanetRepository()
	tc.techRepo = helpers.NewMockTechnologyRepository()
	fleetRepo := helpers.NewMockFleetRepository()
	breakthroughRepo := helpers.NewMockBreakthroughRepository()
	clock := shared.NewMockClock(helpers.StartedAt)

	colonize := expansionCmd.NewExecuteColonizationHandler(fleetRepo, tc.planetRepo, tc.playerRepo)
	tc.processTurn = commands.NewProcessTurnHandler(
		tc.gameRepo, tc.playerRepo, tc.planetRepo, fleetRepo, tc.techRepo, breakthroughRepo,
		helpers.NewMockDesignRepository(), helpers.NewMockQueueRepository(), colonize,
		helpers.PassthroughTxManager{}, clock,
	)
	tc.checkVictory = commands.NewCheckVictoryHandler(tc.gameRepo, tc.playerRepo, clock)

	tc.game = nil
	tc.players = make(map[string]*player.Player)
	tc.colonies = make(map[string]int)
}

func (tc *turnResolutionContext) aRunningGame() error {
	g := game.NewGame("scenario", 2300, helpers.StartedAt)
	if err := g.Start(helpers.StartedAt); err != nil {
		return err
	}
	if err := tc.gameRepo.Save(context.Background(), g); err != nil {
		return err
	}
	tc.game = g
	return nil
}

func (tc *turnResolutionContext) addPlayer(name string) (*player.Player, error) {
	ctx := context.Background()
	p := player.NewComputerPlayer(tc.game.ID, name, "red", ai.TierCommander)
	if err := tc.playerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := tc.techRepo.Save(ctx, player.NewTechnology(p.ID)); err != nil {
		return nil, err
	}
	tc.players[name] = p
	return p, nil
}

func (tc *turnResolutionContext) aPlayerWithAColonyOf(name string, population int) error {
	p, err := tc.addPlayer(name)
	if err != nil {
		return err
	}
	colony := helpers.ColonyPlanet(tc.game.ID, p.ID, shared.NewPosition(0, 0), population)
	if err := tc.planetRepo.Save(context.Background(), colony); err != nil {
		return err
	}
	tc.colonies[name] = colony.ID
	return nil
}

func (tc *turnResolutionContext) aDestitutePlayerOwing(name string, debt int) error {
	p, err := tc.addPlayer(name)
	if err != nil {
		return err
	}
	p.Money = -debt
	return tc.playerRepo.Save(context.Background(), p)
}

func (tc *turnResolutionContext) anEliminatedPlayer(name string) error {
	p, err := tc.addPlayer(name)
	if err != nil {
		return err
	}
	p.Eliminate(helpers.StartedAt)
	return tc.playerRepo.Save(context.Background(), p)
}

func (tc *turnResolutionContext) theTurnResolves() error {
	_, err := tc.processTurn.Process(context.Background(), tc.game.ID)
	if err != nil {
		return err
	}
	refreshed, err := tc.gameRepo.FindByID(context.Background(), tc.game.ID)
	if err != nil {
		return err
	}
	tc.game = refreshed
	return nil
}

func (tc *turnResolutionContext) victoryIsChecked() error {
	if _, err := tc.checkVictory.Check(context.Background(), tc.game.ID); err != nil {
		return err
	}
	refreshed, err := tc.gameRepo.FindByID(context.Background(), tc.game.ID)
	if err != nil {
		return err
	}
	tc.game = refreshed
	return nil
}

func (tc *turnResolutionContext) theCalendarShouldAdvanceTo(turn, year int) error {
	if tc.game.Turn != turn || tc.game.Year != year {
		return fmt.Errorf("expected turn %d year %d, got turn %d year %d", turn, year, tc.game.Turn, tc.game.Year)
	}
	return nil
}

func (tc *turnResolutionContext) playerShouldHaveMoney(name string, money int) error {
	p, err := tc.findPlayer(name)
	if err != nil {
		return err
	}
	if p.Money != money {
		return fmt.Errorf("expected %d money, got %d", money, p.Money)
	}
	return nil
}

func (tc *turnResolutionContext) theColonyShouldHoldInhabitants(name string, population int) error {
	planetID, ok := tc.colonies[name]
	if !ok {
		return fmt.Errorf("player %q has no colony on record", name)
	}
	colony, err := tc.planetRepo.FindByID(context.Background(), planetID)
	if err != nil {
		return err
	}
	if colony.Population != population {
		return fmt.Errorf("expected %d inhabitants, got %d", population, colony.Population)
	}
	return nil
}

func (tc *turnResolutionContext) playerShouldBeEliminated(name string) error {
	p, err := tc.findPlayer(name)
	if err != nil {
		return err
	}
	if !p.Eliminated {
		return fmt.Errorf("expected %q to be eliminated", name)
	}
	return nil
}

func (tc *turnResolutionContext) playerShouldStillBeInPlay(name string) error {
	p, err := tc.findPlayer(name)
	if err != nil {
		return err
	}
	if p.Eliminated {
		return fmt.Errorf("expected %q to still be in play", name)
	}
	return nil
}

func (tc *turnResolutionContext) theGameShouldBeFinished() error {
	if tc.game.Status != game.StatusFinished {
		return fmt.Errorf("expected finished, got %s", tc.game.Status)
	}
	return nil
}

func (tc *turnResolutionContext) theGameShouldStillBeRunning() error {
	if !tc.game.IsRunning() {
		return fmt.Errorf("expected running, got %s", tc.game.Status)
	}
	return nil
}

func (tc *turnResolutionContext) theWinnerShouldBe(name string) error {
	p, ok := tc.players[name]
	if !ok {
		return fmt.Errorf("unknown player %q", name)
	}
	if tc.game.WinnerID == nil {
		return fmt.Errorf("no winner recorded")
	}
	if *tc.game.WinnerID != p.ID {
		return fmt.Errorf("expected winner %d, got %d", p.ID, *tc.game.WinnerID)
	}
	return nil
}

func (tc *turnResolutionContext) findPlayer(name string) (*player.Player, error) {
	p, ok := tc.players[name]
	if !ok {
		return nil, fmt.Errorf("unknown player %q", name)
	}
	return tc.playerRepo.FindByID(context.Background(), p.ID)
}

// InitializeTurnResolutionScenario registers the turn resolution steps.
func InitializeTurnResolutionScenario(sc *godog.ScenarioContext) {
	tc := &turnResolutionContext{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.Step(`^a running game$`, tc.aRunningGame)
	sc.Step(`^a player "([^"]*)" with a colony of (\d+) inhabitants$`, tc.aPlayerWithAColonyOf)
	sc.Step(`^a destitute player "([^"]*)" owing (\d+) money$`, tc.aDestitutePlayerOwing)
	sc.Step(`^an eliminated player "([^"]*)"$`, tc.anEliminatedPlayer)
	sc.Step(`^the turn resolves$`, tc.theTurnResolves)
	sc.Step(`^victory is checked$`, tc.victoryIsChecked)

	sc.Step(`^the calendar should advance to turn (\d+) and year (\d+)$`, tc.theCalendarShouldAdvanceTo)
	sc.Step(`^"([^"]*)" should have (\d+) money$`, tc.playerShouldHaveMoney)
	sc.Step(`^the colony of "([^"]*)" should hold (\d+) inhabitants$`, tc.theColonyShouldHoldInhabitants)
	sc.Step(`^"([^"]*)" should be eliminated$`, tc.playerShouldBeEliminated)
	sc.Step(`^"([^"]*)" should still be in play$`, tc.playerShouldStillBeInPlay)
	sc.Step(`^the game should be finished$`, tc.theGameShouldBeFinished)
	sc.Step(`^the game should still be running$`, tc.theGameShouldStillBeRunning)
	sc.Step(`^the winner should be "([^"]*)"$`, tc.theWinnerShouldBe)
}
