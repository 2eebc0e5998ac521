package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbit-labs/gazer-cli/internal/adapters/driven/export"
	"github.com/orbit-labs/gazer-cli/internal/connectors/discord"
	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/core/services"
)

var chatOpts struct {
	token     string
	reference string
	before    int
	after     int
	focusUser string
	outputDir string
	delay     time.Duration
}

var chatCmd = &cobra.Command{
	Use:   "chat <channel-id>",
	Short: "Archive message history from a Discord channel",
	Long: `Fetches message history from a Discord channel and extracts the
participants. Without a reference message the newest messages are
walked backwards; with one, history is fetched in both directions
around it. Writes a participant CSV and a raw message JSON dump into
the output directory, plus a separate JSON for the focus user's
messages when --user is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatOpts.token, "token", "t", "", "Discord authorization token")
	chatCmd.Flags().StringVarP(&chatOpts.reference, "reference", "r", "", "Reference message ID to page around")
	chatCmd.Flags().IntVarP(&chatOpts.before, "before", "b", 250, "Maximum messages before the reference")
	chatCmd.Flags().IntVarP(&chatOpts.after, "after", "a", 250, "Maximum messages after the reference")
	chatCmd.Flags().StringVarP(&chatOpts.focusUser, "user", "u", "", "User ID whose messages get their own export")
	chatCmd.Flags().StringVarP(&chatOpts.outputDir, "output-dir", "o", "discord_output", "Directory for output files")
	chatCmd.Flags().DurationVarP(&chatOpts.delay, "delay", "d", time.Second, "Pause between history batches")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	channelID := args[0]
	if chatOpts.focusUser != "" && !domain.ValidSnowflake(chatOpts.focusUser) {
		return fmt.Errorf("user %q: %w", chatOpts.focusUser, domain.ErrInvalidSnowflake)
	}

	archiver := chatArchiver
	if archiver == nil {
		token := resolveToken(chatOpts.token, os.Getenv("DISCORD_TOKEN"), "discord.token")
		if token == "" {
			return domain.ErrAuthRequired
		}

		exporter, err := export.NewChatArchiveWriter(chatOpts.outputDir)
		if err != nil {
			return err
		}

		history := discord.NewClient(token, discord.DefaultRetryConfig())
		archiver = services.NewChatArchiver(history, exporter)
	}

	cmd.Printf("Archiving channel %s...\n", channelID)

	result, err := archiver.Archive(cmd.Context(), channelID, driving.ChatOptions{
		Reference: chatOpts.reference,
		MaxBefore: chatOpts.before,
		MaxAfter:  chatOpts.after,
		FocusUser: chatOpts.focusUser,
		Delay:     chatOpts.delay,
	})
	if err != nil {
		return fmt.Errorf("archive failed: %w", err)
	}

	cmd.Printf("Done: %d messages from %d users, saved to %s\n",
		len(result.Messages), len(result.Users), chatOpts.outputDir)
	if chatOpts.focusUser != "" {
		cmd.Printf("Focus user %s wrote %d messages\n", chatOpts.focusUser, len(result.FocusMessages))
	}
	return nil
}
