package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the config
search order and --difficulty are applied. The output is valid YAML and can
be saved as a starting point for --config.

Search order:
  --config path, ~/.arcade/configs/flappy.yaml, ./configs/flappy.yaml,
  then the built-in defaults.

Examples:
  flappy config
  flappy config --difficulty hard > my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, src, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.MarshalFlappy(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", src)
	_, err = os.Stdout.Write(data)
	return err
}
