package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pyro/internal/core"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro"
	"github.com/vovakirdan/tui-pyro/internal/platform/tui"
	"github.com/vovakirdan/tui-pyro/internal/registry"
	"github.com/vovakirdan/tui-pyro/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode directly (default: pyro).

Controls:
  Arrows/WASD  - Move (keeps going until you turn or stop)
  Space        - Stop
  E            - Pick up gas cans under you
  F            - Drop a gas can
  Enter        - Next level
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Examples:
  pyro play
  pyro play pyro_endless
  pyro play --difficulty easy --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if gameCfg, err := loadConfig(); err == nil {
		cfg.TickRate = gameCfg.Timing.TickRate
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database; play goes on without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// fileLogger keeps game logs off the terminal the TUI draws on.
func fileLogger() *log.Logger {
	if !flagVerbose {
		return nil
	}
	f, err := os.OpenFile("pyro.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "pyro"})
	l.SetLevel(log.DebugLevel)
	return l
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "pyro"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'pyro list' to see available modes", gameID)
	}

	logger := newLogger()
	pyro.SetLogger(fileLogger())

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, store, runtimeConfig())
	return err
}

func runMenu(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	pyro.SetLogger(fileLogger())

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(store, runtimeConfig())
}
