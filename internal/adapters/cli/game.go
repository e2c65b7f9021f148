package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/orchestration"
	setupCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/setup/commands"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/infrastructure/config"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Manage game lifecycle",
		Long: `Create games, add players, and launch the simulation.

A game starts in the lobby, accepts players, and begins once started.
From then on the daemon advances it turn by turn.

Examples:
  colonie game create --name "Alpha Sector"
  colonie game join --game 1 --name Ripley
  colonie game join --game 1 --name Borg --computer --difficulty OVERMIND
  colonie game start --game 1
  colonie game list`,
	}

	cmd.AddCommand(newGameCreateCommand())
	cmd.AddCommand(newGameJoinCommand())
	cmd.AddCommand(newGameStartCommand())
	cmd.AddCommand(newGameListCommand())

	return cmd
}

func withApp(fn func(app *App) error) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app, err := NewApp(cfg, orchestration.NoopMetrics{})
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func newGameCreateCommand() *cobra.Command {
	var (
		name      string
		startYear int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game in the lobby state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			return withApp(func(app *App) error {
				response, err := app.Mediator.Send(context.Background(), &setupCmd.CreateGameCommand{
					Name:      name,
					StartYear: startYear,
				})
				if err != nil {
					return fmt.Errorf("failed to create game: %w", err)
				}

				result := response.(*setupCmd.CreateGameResponse)
				fmt.Println("✓ Game created")
				fmt.Printf("  ID:    %d\n", result.Game.ID)
				fmt.Printf("  Name:  %s\n", result.Game.Name)
				fmt.Printf("  Year:  %d\n", result.Game.Year)
				fmt.Println("\nAdd players with: colonie game join --game", result.Game.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().IntVar(&startYear, "year", setupCmd.DefaultStartYear, "Starting calendar year")

	return cmd
}

func newGameJoinCommand() *cobra.Command {
	var (
		gameID     int
		name       string
		color      string
		isComputer bool
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Add a player to a lobby game",
		Long: `Add a human or computer player to a game still in the lobby.

Computer players take a difficulty tier: CADET, LIEUTENANT, COMMANDER,
ADMIRAL or OVERMIND. Unknown tiers fall back to COMMANDER.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 {
				return fmt.Errorf("--game flag is required")
			}
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			return withApp(func(app *App) error {
				response, err := app.Mediator.Send(context.Background(), &setupCmd.JoinGameCommand{
					GameID:     gameID,
					Name:       name,
					Color:      color,
					IsComputer: isComputer,
					Difficulty: ai.Tier(difficulty),
				})
				if err != nil {
					return fmt.Errorf("failed to join game: %w", err)
				}

				result := response.(*setupCmd.JoinGameResponse)
				fmt.Println("✓ Player joined")
				fmt.Printf("  ID:    %d\n", result.Player.ID)
				fmt.Printf("  Name:  %s\n", result.Player.Name)
				if result.Player.IsComputer {
					fmt.Printf("  Tier:  %s\n", *result.Player.Difficulty)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&gameID, "game", 0, "Game ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&color, "color", "", "Player color")
	cmd.Flags().BoolVar(&isComputer, "computer", false, "Computer-controlled player")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(ai.TierCommander), "AI difficulty tier")

	return cmd
}

func newGameStartCommand() *cobra.Command {
	var (
		gameID int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a lobby game",
		Long: `Generate the galaxy, assign homeworlds and starting fleets, and move the
game to the running state. Needs at least two players.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 {
				return fmt.Errorf("--game flag is required")
			}

			return withApp(func(app *App) error {
				response, err := app.Mediator.Send(context.Background(), &setupCmd.StartGameCommand{
					GameID: gameID,
					Seed:   seed,
				})
				if err != nil {
					return fmt.Errorf("failed to start game: %w", err)
				}

				result := response.(*setupCmd.StartGameResponse)
				fmt.Println("✓ Game started")
				fmt.Printf("  Planets: %d\n", result.PlanetCount)
				fmt.Printf("  Year:    %d\n", result.Game.Year)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&gameID, "game", 0, "Game ID (required)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Galaxy generation seed (0 = derived from game ID)")

	return cmd
}

func newGameListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games by lifecycle state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *App) error {
				games, err := app.GameRepo.ListByStatus(context.Background(), game.Status(status))
				if err != nil {
					return fmt.Errorf("failed to list games: %w", err)
				}

				if len(games) == 0 {
					fmt.Printf("No games with status %s.\n", status)
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSTATUS\tTURN\tYEAR")
				fmt.Fprintln(w, "--\t----\t------\t----\t----")
				for _, g := range games {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", g.ID, g.Name, g.Status, g.Turn, g.Year)
				}
				w.Flush()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(game.StatusRunning), "Lifecycle state filter (LOBBY, RUNNING, FINISHED)")

	return cmd
}
