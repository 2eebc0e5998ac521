package cli

import (
	"github.com/spf13/cobra"

	"github.com/orbit-labs/gazer-cli/internal/adapters/driven/config/file"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// version is set by Execute from the build information.
var version = "dev"

var verbose bool

// Injected services. Left nil in production, each command builds its
// real stack from flags; tests swap these in to bypass the network.
var (
	stargazerCollector driving.StargazerCollector
	emailResolver      driving.EmailResolver
	chatArchiver       driving.ChatArchiver
)

// configStore holds tokens and defaults from ~/.gazer/config.toml.
// Nil when the config directory is unavailable; commands fall back to
// flags and environment variables.
var configStore driven.ConfigStore

var rootCmd = &cobra.Command{
	Use:   "gazer",
	Short: "Collect public social graph data from GitHub and Discord",
	Long: `Gazer collects who is around a project: the stargazers of a GitHub
repository, contact details for those users, and the participants of a
Discord channel. Each command writes its results to CSV or JSON files.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	version = v

	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable: %v", err)
	} else {
		configStore = store
	}

	return rootCmd.Execute()
}

// resolveToken picks a token by precedence: flag, environment, config.
func resolveToken(flagValue, envValue, configKey string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue != "" {
		return envValue
	}
	if configStore != nil {
		return configStore.GetString(configKey)
	}
	return ""
}
