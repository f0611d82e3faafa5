package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pyro/internal/config"
)

var (
	flagConfigDefaults bool
	flagConfigWrite    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration that play and simulate would use, after the
search order and the difficulty preset are applied.

--defaults prints the embedded defaults instead, and --write saves the
output to the user config path (~/.pyro/configs/pyro.yaml).

Examples:
  pyro config
  pyro config --difficulty hard
  pyro config --defaults --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded defaults")
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write to the user config path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	var data []byte
	if flagConfigDefaults {
		data = config.DefaultYAML()
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if data, err = cfg.Marshal(); err != nil {
			return err
		}
	}

	if !flagConfigWrite {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := config.UserConfigPath()
	if path == "" {
		return fmt.Errorf("cannot resolve the user config path")
	}
	if err := config.WriteFile(path, data); err != nil {
		return err
	}
	newLogger().Info("wrote config", "path", path)
	return nil
}
