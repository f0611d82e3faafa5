// pyro is a terminal game: leave a fuse behind you, reach the exit of the
// maze, and score by how much of it burns down.
//
// Usage:
//
//	pyro                   - Start the mode picker
//	pyro play [mode]       - Play a mode (pyro, pyro_endless)
//	pyro list              - List available modes
//	pyro scores [mode]     - Show high scores and recent levels
//	pyro simulate          - Run a headless seeded game
//	pyro maze              - Print a generated maze or level
//	pyro config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Scores database (default: ~/.pyro/scores.db)
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pyro/internal/config"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pyro",
	Short: "Pyro - outrun the fire you light",
	Long: `Pyro drops you into a maze with a lit fuse trailing behind you.
Reach an exit, then watch the level burn: the fewer walls survive,
the higher your score.

Examples:
  pyro
  pyro play pyro_endless --difficulty hard
  pyro simulate --seed 42 --ticks 2000
  pyro maze --height 8 --width 12`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := pyro.SetDifficultyPreset(flagDifficulty); err != nil {
			return err
		}
		pyro.SetConfigPath(flagConfig)
		return nil
	},
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pyro/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(mazeCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger.
func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pyro",
	})
	if flagVerbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// loadConfig loads the configuration named by the global flags.
func loadConfig() (config.PyroConfig, error) {
	cfg, err := config.LoadPyro(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPyroPreset(&cfg, preset)
	}
	return cfg, nil
}
