package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored configuration",
	Long: `View and set configuration values stored in the gazer config file.

Useful keys:
  github.token   GitHub API token for the emails command
  discord.token  Discord authorization token for the chat command`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())
	for _, key := range []string{"github.token", "discord.token"} {
		value := configStore.GetString(key)
		if value == "" {
			cmd.Printf("  %-14s (not set)\n", key)
		} else {
			cmd.Printf("  %-14s %s\n", key, maskToken(value))
		}
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %s is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

// maskToken hides all but the edges of a secret for display.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
