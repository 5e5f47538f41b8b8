// Package commands provides CLI commands for orthochat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkoulouris/orthochat/internal/config"
)

var (
	// Global flags
	modelFlag    string
	modelBFlag   string
	arenaFlag    bool
	orthodoxFlag bool
	debugFlag    bool
	outputFlag   string
	fileFlag     string
	rawFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orthochat [input]",
	Short: "Orthodox Christian translation assistant for the terminal",
	Long: `orthochat sends text to OpenRouter-hosted models to translate English
into Traditional Chinese with Orthodox Christian terminology, or to
annotate Bible quotations with scripture references.

Input starting with "translate" is translated; input starting with
"annotate" is scanned for Bible quotes; anything else is sent as-is.

Examples:
  orthochat chat                             Start the interactive TUI
  orthochat "translate Glory to God"         One-shot translation
  orthochat "annotate In the beginning..."   One-shot annotation
  orthochat -f sermon.md -o out.md           File in, file out
  cat text.md | orthochat --raw              Pipe-friendly raw output
  orthochat key set                          Store your OpenRouter API key`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("orthochat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		cfg := effectiveConfig(cmd)

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(cfg, string(data), rawFlag)
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(cfg, string(data), rawFlag)
		}

		if len(args) > 0 {
			return runQuery(cfg, args[0], rawFlag)
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model ID to use (e.g., qwen/qwen3-8b:free)")
	rootCmd.PersistentFlags().StringVar(&modelBFlag, "model-b", "", "Second model for arena mode")
	rootCmd.PersistentFlags().BoolVar(&arenaFlag, "arena", false, "Compare two models side by side")
	rootCmd.PersistentFlags().BoolVar(&orthodoxFlag, "orthodox", true, "Use the Orthodox Christian translation context")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show the exact prompt sent to the model")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read input from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(modelsCmd)
}

// effectiveConfig loads the stored configuration and overlays the flags
// set for this invocation.
func effectiveConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	if modelFlag != "" {
		cfg.DefaultModel = modelFlag
		cfg.ModelA = modelFlag
	}
	if modelBFlag != "" {
		cfg.ModelB = modelBFlag
	}
	if arenaFlag {
		cfg.Arena = true
	}
	if cmd.Flags().Changed("orthodox") {
		cfg.Orthodox = orthodoxFlag
		cfg.OrthodoxA = orthodoxFlag
	}
	if debugFlag {
		cfg.Debug = true
	}

	return cfg
}
