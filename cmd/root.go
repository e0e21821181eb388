package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcraft/internal/config"
	"github.com/abhisek/promptcraft/internal/script"
)

var rootCmd = &cobra.Command{
	Use:   "promptcraft",
	Short: "Creative assistant that builds a video prompt with you",
	Long:  "Promptcraft is a terminal chat that walks you through five creative choices and turns them into a video generation prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/promptcraft/config.toml)")
	rootCmd.PersistentFlags().String("script", "", "Path to a script JSON file (overrides script.path)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration selected by --config and validates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadScript returns the script from --script, then script.path, then the
// built-in script.
func loadScript(cmd *cobra.Command, cfg *config.Config) (*script.Script, error) {
	path, _ := cmd.Flags().GetString("script")
	if path == "" {
		path = cfg.Script.Path
	}
	if path == "" {
		return script.Default(), nil
	}
	return readScript(path)
}

// configuredScript loads the configuration only to resolve the script.
func configuredScript(cmd *cobra.Command) (*script.Script, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadScript(cmd, cfg)
}

func readScript(path string) (*script.Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	sc, err := script.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return sc, nil
}
