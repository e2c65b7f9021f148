package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/setup/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

// lineGenerator lays habitable planets on a line so homeworld selection and
// starting distances are predictable in scenarios.
type lineGenerator struct{}

func (lineGenerator) Generate(spec galaxy.GeneratorSpec) []*galaxy.Planet {
	planets := make([]*galaxy.Planet, 0, spec.PlanetCount)
	for i := 0; i < spec.PlanetCount; i++ {
		pos := shared.NewPosition(float64(i*20), 0)
		planets = append(planets, galaxy.NewPlanet(spec.GameID, "line", pos, 22.0, 1.0, 1000+i))
	}
	return planets
}

type gameLifecycleContext struct {
	gameRepo   *helpers.MockGameRepository
	playerRepo *helpers.MockPlayerRepository
	planetRepo *helpers.MockPlanetRepository
	fleetRepo  *helpers.MockFleetRepository

	createGame *commands.CreateGameHandler
	joinGame   *commands.JoinGameHandler
	startGame  *commands.StartGameHandler

	game    *game.Game
	players map[string]*player.Player
	err     error
}

func (gc *gameLifecycleContext) reset() {
	gc.gameRepo = helpers.NewMockGameRepository()
	gc.playerRepo = helpers.NewMockPlayerRepository()
	gc.planetRepo = helpers.NewMockPlanetRepository()
	gc.fleetRepo = helpers.NewMockFleetRepository()
	techRepo := helpers.NewMockTechnologyRepository()
	clock := shared.NewMockClock(helpers.StartedAt)
	sink := &helpers.RecordingNotificationSink{}

	gc.createGame = commands.NewCreateGameHandler(gc.gameRepo, clock)
	gc.joinGame = commands.NewJoinGameHandler(gc.gameRepo, gc.playerRepo, techRepo, sink)
	gc.startGame = commands.NewStartGameHandler(
		gc.gameRepo, gc.playerRepo, gc.planetRepo, gc.fleetRepo,
		lineGenerator{}, sink, helpers.PassthroughTxManager{}, clock,
	)

	gc.game = nil
	gc.players = make(map[string]*player.Player)
	gc.err = nil
}

func (gc *gameLifecycleContext) iCreateAGameNamed(name string) error {
	resp, err := gc.createGame.Handle(context.Background(), &commands.CreateGameCommand{Name: name})
	if err != nil {
		return err
	}
	gc.game = resp.(*commands.CreateGameResponse).Game
	return nil
}

func (gc *gameLifecycleContext) join(name, color string, isComputer bool, tier ai.Tier) error {
	resp, err := gc.joinGame.Handle(context.Background(), &commands.JoinGameCommand{
		GameID:     gc.game.ID,
		Name:       name,
		Color:      color,
		IsComputer: isComputer,
		Difficulty: tier,
	})
	if err != nil {
		return err
	}
	gc.players[name] = resp.(*commands.JoinGameResponse).Player
	return nil
}

func (gc *gameLifecycleContext) aHumanPlayerJoins(name, color string) error {
	return gc.join(name, color, false, "")
}

func (gc *gameLifecycleContext) aComputerPlayerJoins(name, tier string) error {
	return gc.join(name, "red", true, ai.Tier(tier))
}

func (gc *gameLifecycleContext) aHumanPlayerAttemptsToJoin(name string) error {
	gc.err = gc.join(name, "gray", false, "")
	return nil
}

func (gc *gameLifecycleContext) theGameStarts() error {
	if err := gc.iAttemptToStartTheGame(); err != nil {
		return err
	}
	return gc.err
}

func (gc *gameLifecycleContext) iAttemptToStartTheGame() error {
	_, gc.err = gc.startGame.Handle(context.Background(), &commands.StartGameCommand{GameID: gc.game.ID, Seed: 1})
	if gc.err == nil {
		refreshed, err := gc.gameRepo.FindByID(context.Background(), gc.game.ID)
		if err != nil {
			return err
		}
		gc.game = refreshed
	}
	return nil
}

func (gc *gameLifecycleContext) theGameShouldBeInTheLobby() error {
	if gc.game.Status != game.StatusLobby {
		return fmt.Errorf("expected lobby, got %s", gc.game.Status)
	}
	return nil
}

func (gc *gameLifecycleContext) theGameShouldBeRunning() error {
	if !gc.game.IsRunning() {
		return fmt.Errorf("expected running, got %s", gc.game.Status)
	}
	return nil
}

func (gc *gameLifecycleContext) theCalendarShouldReadYear(year int) error {
	if gc.game.Year != year {
		return fmt.Errorf("expected year %d, got %d", year, gc.game.Year)
	}
	return nil
}

func (gc *gameLifecycleContext) theGameShouldHavePlayers(count int) error {
	players, err := gc.playerRepo.ListByGame(context.Background(), gc.game.ID)
	if err != nil {
		return err
	}
	if len(players) != count {
		return fmt.Errorf("expected %d players, got %d", count, len(players))
	}
	return nil
}

func (gc *gameLifecycleContext) playerShouldStartWith(name string, money, metal int) error {
	p, ok := gc.players[name]
	if !ok {
		return fmt.Errorf("unknown player %q", name)
	}
	if p.Money != money || p.Metal != metal {
		return fmt.Errorf("expected %d/%d, got %d/%d", money, metal, p.Money, p.Metal)
	}
	return nil
}

func (gc *gameLifecycleContext) playerShouldPlayAtDifficulty(name, tier string) error {
	p, ok := gc.players[name]
	if !ok {
		return fmt.Errorf("unknown player %q", name)
	}
	if p.Difficulty == nil {
		return fmt.Errorf("player %q has no difficulty", name)
	}
	if *p.Difficulty != ai.Tier(tier) {
		return fmt.Errorf("expected %s, got %s", tier, *p.Difficulty)
	}
	return nil
}

func (gc *gameLifecycleContext) theGalaxyShouldHoldPlanets(count int) error {
	planets, err := gc.planetRepo.ListByGame(context.Background(), gc.game.ID)
	if err != nil {
		return err
	}
	if len(planets) != count {
		return fmt.Errorf("expected %d planets, got %d", count, len(planets))
	}
	return nil
}

func (gc *gameLifecycleContext) everyPlayerShouldHoldADevelopedHomeworld() error {
	for name, p := range gc.players {
		colonies, err := gc.planetRepo.ListColoniesByOwner(context.Background(), p.ID)
		if err != nil {
			return err
		}
		if len(colonies) != 1 {
			return fmt.Errorf("player %q holds %d colonies, want 1", name, len(colonies))
		}
		if colonies[0].Status != galaxy.PlanetDeveloped {
			return fmt.Errorf("homeworld of %q is %s", name, colonies[0].Status)
		}
	}
	return nil
}

func (gc *gameLifecycleContext) everyPlayerShouldCommandAColonyCapableFleet() error {
	for name, p := range gc.players {
		fleets, err := gc.fleetRepo.ListByOwner(context.Background(), p.ID)
		if err != nil {
			return err
		}
		hasColonizer := false
		for _, f := range fleets {
			if f.CanColonize {
				hasColonizer = true
			}
		}
		if !hasColonizer {
			return fmt.Errorf("player %q has no colony-capable fleet", name)
		}
	}
	return nil
}

func (gc *gameLifecycleContext) theStartShouldBeRefused() error {
	if gc.err == nil {
		return fmt.Errorf("expected the start to fail")
	}
	return nil
}

func (gc *gameLifecycleContext) theJoinShouldBeRefused() error {
	if gc.err == nil {
		return fmt.Errorf("expected the join to fail")
	}
	return nil
}

// InitializeGameLifecycleScenario registers the game lifecycle steps.
func InitializeGameLifecycleScenario(sc *godog.ScenarioContext) {
	gc := &gameLifecycleContext{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		gc.reset()
		return ctx, nil
	})

	sc.Step(`^I create a game named "([^"]*)"$`, gc.iCreateAGameNamed)
	sc.Step(`^a game named "([^"]*)"$`, gc.iCreateAGameNamed)
	sc.Step(`^a human player "([^"]*)" joins with color "([^"]*)"$`, gc.aHumanPlayerJoins)
	sc.Step(`^a computer player "([^"]*)" joins at difficulty "([^"]*)"$`, gc.aComputerPlayerJoins)
	sc.Step(`^a human player "([^"]*)" attempts to join$`, gc.aHumanPlayerAttemptsToJoin)
	sc.Step(`^the game starts$`, gc.theGameStarts)
	sc.Step(`^I attempt to start the game$`, gc.iAttemptToStartTheGame)

	sc.Step(`^the game should be in the lobby$`, gc.theGameShouldBeInTheLobby)
	sc.Step(`^the game should be running$`, gc.theGameShouldBeRunning)
	sc.Step(`^the calendar should read year (\d+)$`, gc.theCalendarShouldReadYear)
	sc.Step(`^the game should have (\d+) players$`, gc.theGameShouldHavePlayers)
	sc.Step(`^"([^"]*)" should start with (\d+) money and (\d+) metal$`, gc.playerShouldStartWith)
	sc.Step(`^"([^"]*)" should play at difficulty "([^"]*)"$`, gc.playerShouldPlayAtDifficulty)
	sc.Step(`^the galaxy should hold (\d+) planets$`, gc.theGalaxyShouldHoldPlanets)
	sc.Step(`^every player should hold a developed homeworld$`, gc.everyPlayerShouldHoldADevelopedHomeworld)
	sc.Step(`^every player should command a colony-capable fleet$`, gc.everyPlayerShouldCommandAColonyCapableFleet)
	sc.Step(`^the start should be refused$`, gc.theStartShouldBeRefused)
	sc.Step(`^the join should be refused$`, gc.theJoinShouldBeRefused)
}
