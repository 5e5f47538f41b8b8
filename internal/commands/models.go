package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoulouris/orthochat/internal/config"
	"github.com/dkoulouris/orthochat/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the model catalog",
	Long: `List the known OpenRouter models.

Any other OpenRouter model ID is accepted with --model; this catalog
only covers the free-tier models shown in the settings menu.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		for _, m := range models.AllModels() {
			marker := " "
			if m.ID == cfg.DefaultModel {
				marker = "*"
			}
			fmt.Printf("%s %-22s %s\n", marker, m.Name, m.ID)
		}
		fmt.Println("\n* current default model")
		return nil
	},
}
