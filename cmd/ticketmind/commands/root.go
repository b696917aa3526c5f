package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/engine"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
)

// buildEngine loads configuration from the --config flag and constructs the
// engine. A missing config file falls back to stock defaults so the CLI
// works out of the box.
func buildEngine(cmd *cobra.Command) (*engine.Engine, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.EngineConfig
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Parse(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", configPath, err)
		}
	} else {
		cfg = config.Default()
	}

	if err := logging.Init(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}

	return engine.New(cfg)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
