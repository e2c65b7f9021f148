package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colonie",
		Short: "Colonie CLI - manage games, players and turns",
		Long: `Colonie CLI manages turn-based interstellar strategy games hosted by the
colonied daemon: game lifecycle, players, and turn submission.

Examples:
  colonie game create --name "Alpha Sector" --year 2300
  colonie game join --game 1 --name Borg --computer --difficulty ADMIRAL
  colonie game start --game 1
  colonie game list
  colonie turn submit --game 1 --player 2
  colonie turn run --game 1`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewTurnCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
