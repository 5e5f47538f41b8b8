package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkoulouris/orthochat/internal/api"
	"github.com/dkoulouris/orthochat/internal/config"
	"github.com/dkoulouris/orthochat/internal/glossary"
	"github.com/dkoulouris/orthochat/internal/scripture"
	"github.com/dkoulouris/orthochat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session.

The chat maintains conversation context across messages and supports
arena mode for comparing two models side by side. Type /settings to
configure, /save to export the transcript, and 'exit', 'quit', or
Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(effectiveConfig(cmd))
	},
}

func runChat(cfg config.Config) error {
	apiKey := config.LoadAPIKey()

	gloss, err := glossary.LoadDir(cfg.GlossaryDir, cfg.GlossaryMinScore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: glossary load failed: %v\n", err)
		gloss = glossary.New(cfg.GlossaryMinScore)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[verbose] Glossary: %d terms loaded\n", gloss.Len())
	}

	deps := tui.Deps{
		Client: api.NewClient(apiKey),
		NewClient: func(key string) api.ClientInterface {
			return api.NewClient(key)
		},
		Config:    cfg,
		Glossary:  gloss,
		Scripture: scripture.NewService(),
		HasKey:    apiKey != "",
	}

	return tui.RunChat(deps)
}
