package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pyro/internal/games/pyro"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/maze"
)

var (
	flagMazeHeight     int
	flagMazeWidth      int
	flagMazeDirections bool
	flagMazeLevel      bool
	flagMazePerfect    bool
)

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print a generated maze or level",
	Long: `Generate a maze with Wilson's algorithm and print it.

By default prints the coarse maze walls. --directions prints the walk
direction recorded in every cell, and --level builds a full level from
the configuration and prints its tiles.

Examples:
  pyro maze --seed 3
  pyro maze --height 6 --width 20 --directions
  pyro maze --level --config ./tuned.yaml`,
	Args: cobra.NoArgs,
	RunE: runMaze,
}

func init() {
	mazeCmd.Flags().IntVar(&flagMazeHeight, "height", 10, "Maze height in cells")
	mazeCmd.Flags().IntVar(&flagMazeWidth, "width", 10, "Maze width in cells")
	mazeCmd.Flags().BoolVar(&flagMazeDirections, "directions", false, "Print walk directions instead of walls")
	mazeCmd.Flags().BoolVar(&flagMazeLevel, "level", false, "Build and print a full level")
	mazeCmd.Flags().BoolVar(&flagMazePerfect, "perfect", false, "Skip the extra wall removal and print the spanning tree")
}

func runMaze(cmd *cobra.Command, args []string) error {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings := pyro.SettingsFromConfig(cfg)

	if flagMazeLevel {
		l, err := level.Build(settings.Height, settings.Width, settings.Level, rng)
		if err != nil {
			return err
		}
		fmt.Println(l)
		fmt.Printf("\n%dx%d tiles, start %v, %d exits, %d walls (seed %d)\n",
			l.Height, l.Width, l.Start, len(l.Exits), l.WallCount, seed)
		return nil
	}

	opts := settings.Level.Maze
	if flagMazePerfect {
		opts.WallRemovalRatio = 0
	}
	m, err := maze.Generate(flagMazeHeight, flagMazeWidth, rng, opts)
	if err != nil {
		return err
	}
	if flagMazeDirections {
		fmt.Println(m.DirectionString())
	} else {
		fmt.Println(m)
	}
	fmt.Printf("\n%dx%d cells, connected: %v (seed %d)\n", m.Height, m.Width, m.Connected(), seed)
	return nil
}
