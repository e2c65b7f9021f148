package cli

import (
	"fmt"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/galaxygen"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/notification"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/oracle"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/persistence"
	analysisQuery "github.com/franztrierweiler/colonie-ia-sub000/internal/application/analysis/queries"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision"
	decisionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/decision/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion"
	expansionCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/expansion/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/orchestration"
	setupCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/setup/commands"
	turnCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/infrastructure/config"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/infrastructure/database"
)

// App bundles the wired application layer the CLI commands need. One App is
// built per command invocation against a fresh database connection. All
// commands and queries go through the mediator; the orchestrator keeps its
// typed handler references because it consumes their reports directly.
type App struct {
	DB *gorm.DB

	GameRepo   *persistence.GormGameRepository
	PlayerRepo *persistence.GormPlayerRepository

	Mediator     common.Mediator
	Orchestrator *orchestration.Orchestrator
}

// NewApp connects to the database and wires the application layer
func NewApp(cfg *config.Config, metrics orchestration.Metrics) (*App, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return NewAppWithDB(db, cfg, metrics), nil
}

// NewAppWithDB wires the application layer on an existing connection
func NewAppWithDB(db *gorm.DB, cfg *config.Config, metrics orchestration.Metrics) *App {
	clock := shared.NewRealClock()

	gameRepo := persistence.NewGormGameRepository(db)
	playerRepo := persistence.NewGormPlayerRepository(db)
	planetRepo := persistence.NewGormPlanetRepository(db)
	fleetRepo := persistence.NewGormFleetRepository(db)
	techRepo := persistence.NewGormTechnologyRepository(db)
	breakthroughRepo := persistence.NewGormBreakthroughRepository(db)
	designRepo := persistence.NewGormDesignRepository(db)
	queueRepo := persistence.NewGormQueueRepository(db)
	tx := persistence.NewGormTxManager(db)

	reachOracle := oracle.NewStraightLineOracle(planetRepo)
	notifier := notification.NewLogSink()
	generator := galaxygen.NewUniformDiscGenerator()

	analyzer := analysisQuery.NewAnalyzeGameStateHandler(
		gameRepo, playerRepo, planetRepo, fleetRepo, techRepo, reachOracle)
	expansionPlanner := expansion.NewPlanner(planetRepo, fleetRepo, reachOracle)
	productionPlanner := decision.NewProductionPlanner(designRepo, queueRepo)
	movementPlanner := decision.NewMovementPlanner(planetRepo, expansionPlanner)

	processAI := decisionCmd.NewProcessAITurnHandler(
		gameRepo, playerRepo, planetRepo, fleetRepo, techRepo, breakthroughRepo,
		analyzer, productionPlanner, movementPlanner, tx)
	execMoves := decisionCmd.NewExecuteFleetMovementsHandler(fleetRepo)
	colonize := expansionCmd.NewExecuteColonizationHandler(fleetRepo, planetRepo, playerRepo)
	processTurn := turnCmd.NewProcessTurnHandler(
		gameRepo, playerRepo, planetRepo, fleetRepo, techRepo, breakthroughRepo,
		designRepo, queueRepo, colonize,
		tx, clock)
	checkVictory := turnCmd.NewCheckVictoryHandler(gameRepo, playerRepo, clock)

	mediator := common.NewMediator()
	mustRegister(common.RegisterHandler[*setupCmd.CreateGameCommand](mediator,
		setupCmd.NewCreateGameHandler(gameRepo, clock)))
	mustRegister(common.RegisterHandler[*setupCmd.JoinGameCommand](mediator,
		setupCmd.NewJoinGameHandler(gameRepo, playerRepo, techRepo, notifier)))
	mustRegister(common.RegisterHandler[*setupCmd.StartGameCommand](mediator,
		setupCmd.NewStartGameHandler(
			gameRepo, playerRepo, planetRepo, fleetRepo, generator, notifier, tx, clock)))
	mustRegister(common.RegisterHandler[*turnCmd.SubmitTurnCommand](mediator,
		turnCmd.NewSubmitTurnHandler(gameRepo, playerRepo)))
	mustRegister(common.RegisterHandler[*turnCmd.ProcessTurnCommand](mediator, processTurn))
	mustRegister(common.RegisterHandler[*turnCmd.CheckVictoryCommand](mediator, checkVictory))
	mustRegister(common.RegisterHandler[*decisionCmd.ProcessAITurnCommand](mediator, processAI))
	mustRegister(common.RegisterHandler[*decisionCmd.ExecuteFleetMovementsCommand](mediator, execMoves))
	mustRegister(common.RegisterHandler[*expansionCmd.ExecuteColonizationCommand](mediator, colonize))
	mustRegister(common.RegisterHandler[*analysisQuery.AnalyzeGameStateQuery](mediator, analyzer))

	limiter := rate.NewLimiter(
		rate.Limit(cfg.Simulation.AIRateLimit.Rate),
		cfg.Simulation.AIRateLimit.Burst)

	return &App{
		DB:         db,
		GameRepo:   gameRepo,
		PlayerRepo: playerRepo,
		Mediator:   mediator,
		Orchestrator: orchestration.NewOrchestrator(
			gameRepo, playerRepo, processAI, execMoves, processTurn, checkVictory,
			notifier, limiter, metrics),
	}
}

// mustRegister panics on duplicate registration, a wiring bug.
func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// Close releases the database connection
func (a *App) Close() error {
	return database.Close(a.DB)
}
