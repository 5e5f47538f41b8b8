package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dkoulouris/orthochat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show the current configuration.

Use 'config set KEY VALUE' to change a setting, e.g.:
  orthochat config set default_model qwen/qwen3-32b:free
  orthochat config set orthodox false
  orthochat config set glossary_min_score 80`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfig(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func printConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("Config file: %s\n\n", path)

	fmt.Printf("  default_model       %s\n", cfg.DefaultModel)
	fmt.Printf("  model_a             %s\n", cfg.ModelA)
	fmt.Printf("  model_b             %s\n", cfg.ModelB)
	fmt.Printf("  arena               %t\n", cfg.Arena)
	fmt.Printf("  orthodox            %t\n", cfg.Orthodox)
	fmt.Printf("  orthodox_a          %t\n", cfg.OrthodoxA)
	fmt.Printf("  orthodox_b          %t\n", cfg.OrthodoxB)
	fmt.Printf("  debug               %t\n", cfg.Debug)
	fmt.Printf("  verbose             %t\n", cfg.Verbose)
	fmt.Printf("  copy_to_clipboard   %t\n", cfg.CopyToClipboard)
	fmt.Printf("  footnotes           %t\n", cfg.Footnotes)
	fmt.Printf("  glossary_dir        %s\n", cfg.GlossaryDir)
	fmt.Printf("  glossary_min_score  %d\n", cfg.GlossaryMinScore)
	fmt.Printf("  markdown.style      %s\n", cfg.Markdown.Style)

	return nil
}

// applyConfigValue mutates cfg for a single KEY VALUE pair. Split from
// setConfig so it can be tested without touching the filesystem.
func applyConfigValue(cfg *config.Config, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	}

	switch key {
	case "default_model":
		cfg.DefaultModel = value
	case "model_a":
		cfg.ModelA = value
	case "model_b":
		cfg.ModelB = value
	case "arena":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Arena = b
	case "orthodox":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Orthodox = b
	case "orthodox_a":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.OrthodoxA = b
	case "orthodox_b":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.OrthodoxB = b
	case "debug":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Debug = b
	case "verbose":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Verbose = b
	case "copy_to_clipboard":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.CopyToClipboard = b
	case "footnotes":
		b, err := parseBool()
		if err != nil {
			return err
		}
		cfg.Footnotes = b
	case "glossary_dir":
		cfg.GlossaryDir = value
	case "glossary_min_score":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("glossary_min_score expects a number between 0 and 100, got %q", value)
		}
		cfg.GlossaryMinScore = n
	case "markdown.style":
		cfg.Markdown.Style = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}

	return nil
}

func setConfig(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := applyConfigValue(&cfg, key, value); err != nil {
		return err
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("✓ %s = %s\n", key, value)
	return nil
}
