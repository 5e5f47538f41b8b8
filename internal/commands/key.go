package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoulouris/orthochat/internal/config"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored OpenRouter API key",
	Long: `Manage the OpenRouter API key.

The key is stored at ~/.orthochat/api_key with owner-only permissions.
The ` + config.EnvAPIKey + ` environment variable takes precedence over
the stored key.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set [KEY]",
	Short: "Store an API key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) > 0 {
			key = args[0]
		} else {
			var err error
			key, err = readKey()
			if err != nil {
				return err
			}
		}

		if err := config.SaveAPIKey(key); err != nil {
			return err
		}

		path, _ := config.GetAPIKeyPath()
		fmt.Printf("✓ API key saved to %s\n", path)
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearAPIKey(); err != nil {
			return err
		}
		fmt.Println("✓ API key removed")
		return nil
	},
}

var keyPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the API key file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetAPIKeyPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyPathCmd)
}

// readKey prompts for the key without echoing when attached to a
// terminal, and falls back to reading a line from stdin otherwise.
func readKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "OpenRouter API key: ")
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
