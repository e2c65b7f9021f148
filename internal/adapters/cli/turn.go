package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	turnCmd "github.com/franztrierweiler/colonie-ia-sub000/internal/application/turn/commands"
)

// NewTurnCommand creates the turn command with subcommands
func NewTurnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Submit and resolve turns",
		Long: `Submit a human player's turn or drive a game forward by hand.

The daemon normally resolves turns on its own; "turn run" exists for
debugging and for headless play without a daemon.

Examples:
  colonie turn submit --game 1 --player 2
  colonie turn run --game 1
  colonie turn status --game 1`,
	}

	cmd.AddCommand(newTurnSubmitCommand())
	cmd.AddCommand(newTurnRunCommand())
	cmd.AddCommand(newTurnStatusCommand())

	return cmd
}

func newTurnSubmitCommand() *cobra.Command {
	var (
		gameID   int
		playerID int
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Mark a human player's turn as submitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 || playerID == 0 {
				return fmt.Errorf("--game and --player flags are required")
			}

			return withApp(func(app *App) error {
				response, err := app.Mediator.Send(context.Background(), &turnCmd.SubmitTurnCommand{
					GameID:   gameID,
					PlayerID: playerID,
				})
				if err != nil {
					return fmt.Errorf("failed to submit turn: %w", err)
				}

				result := response.(*turnCmd.SubmitTurnResponse)
				fmt.Println("✓ Turn submitted")
				if result.AllSubmitted {
					fmt.Println("  All players ready; the turn will resolve on the next tick")
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&gameID, "game", 0, "Game ID (required)")
	cmd.Flags().IntVar(&playerID, "player", 0, "Player ID (required)")

	return cmd
}

func newTurnRunCommand() *cobra.Command {
	var gameID int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance one game by at most one turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 {
				return fmt.Errorf("--game flag is required")
			}

			return withApp(func(app *App) error {
				resolved, err := app.Orchestrator.RunOnce(context.Background(), gameID)
				if err != nil {
					return fmt.Errorf("failed to run turn: %w", err)
				}
				if resolved {
					fmt.Println("✓ Turn resolved")
				} else {
					fmt.Println("No turn resolved (waiting on player submissions)")
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&gameID, "game", 0, "Game ID (required)")

	return cmd
}

func newTurnStatusCommand() *cobra.Command {
	var gameID int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the per-player submission state of a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == 0 {
				return fmt.Errorf("--game flag is required")
			}

			return withApp(func(app *App) error {
				ctx := context.Background()
				g, err := app.GameRepo.FindByID(ctx, gameID)
				if err != nil {
					return fmt.Errorf("game not found: %w", err)
				}
				players, err := app.PlayerRepo.ListByGame(ctx, gameID)
				if err != nil {
					return fmt.Errorf("failed to list players: %w", err)
				}

				fmt.Printf("Game %d (%s): turn %d, year %d, status %s\n\n",
					g.ID, g.Name, g.Turn, g.Year, g.Status)

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tKIND\tPLANETS\tMONEY\tSUBMITTED\tELIMINATED")
				fmt.Fprintln(w, "--\t----\t----\t-------\t-----\t---------\t----------")
				for _, p := range players {
					kind := "human"
					if p.IsComputer {
						kind = string(*p.Difficulty)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%t\t%t\n",
						p.ID, p.Name, kind, p.PlanetCount, p.Money, p.TurnSubmitted, p.Eliminated)
				}
				w.Flush()
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&gameID, "game", 0, "Game ID (required)")

	return cmd
}
