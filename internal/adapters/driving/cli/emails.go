package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbit-labs/gazer-cli/internal/adapters/driven/export"
	"github.com/orbit-labs/gazer-cli/internal/adapters/driven/storage/sqlite"
	"github.com/orbit-labs/gazer-cli/internal/connectors/github"
	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/core/services"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

var emailsOpts struct {
	input   string
	output  string
	token   string
	delay   time.Duration
	retries int
	start   int
	stop    int
	resume  bool
}

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Resolve emails for GitHub users from a stargazers CSV",
	Long: `Reads usernames from the input CSV and probes GitHub for a contact
email through a chain of sources: the public profile, commits in the
user's own repositories, public push events and commit patch files.
The first source that yields an address wins. Users without a findable
address are still recorded, with the source "none".

Unauthenticated requests are limited to 60 per hour; supply a token via
--token, GITHUB_TOKEN or the github.token config key for 5000.`,
	RunE: runEmails,
}

func init() {
	emailsCmd.Flags().StringVarP(&emailsOpts.input, "input", "i", "stargazers.csv", "Input CSV with usernames")
	emailsCmd.Flags().StringVarP(&emailsOpts.output, "output", "o", "github_emails.csv", "Output CSV file")
	emailsCmd.Flags().StringVarP(&emailsOpts.token, "token", "t", "", "GitHub API token")
	emailsCmd.Flags().DurationVarP(&emailsOpts.delay, "delay", "d", time.Second, "Pause between users")
	emailsCmd.Flags().IntVarP(&emailsOpts.retries, "retries", "r", 3, "Retry attempts per request")
	emailsCmd.Flags().IntVarP(&emailsOpts.start, "start", "s", 1, "Position in the input to start from (1-indexed)")
	emailsCmd.Flags().IntVarP(&emailsOpts.stop, "stop", "e", 0, "Position in the input to stop at (0 = end)")
	emailsCmd.Flags().BoolVar(&emailsOpts.resume, "resume", false, "Skip users already in the output")
	rootCmd.AddCommand(emailsCmd)
}

func runEmails(cmd *cobra.Command, _ []string) error {
	users, err := export.ReadUsernames(emailsOpts.input)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return fmt.Errorf("%s: %w: no usernames", emailsOpts.input, domain.ErrInvalidInput)
	}
	cmd.Printf("Loaded %d users from %s\n", len(users), emailsOpts.input)

	resolver := emailResolver
	if resolver == nil {
		token := resolveToken(emailsOpts.token, os.Getenv("GITHUB_TOKEN"), "github.token")
		if token == "" {
			cmd.Println("No GitHub token supplied; requests are limited to 60 per hour.")
		}

		client := github.NewClient(cmd.Context(), token)
		client.SetRetries(emailsOpts.retries)

		runStore, err := sqlite.NewStore("")
		if err != nil {
			return fmt.Errorf("opening run store: %w", err)
		}
		defer runStore.Close()

		target := "emails:" + emailsOpts.output
		if emailsOpts.resume {
			if err := seedResumeState(cmd, runStore, target); err != nil {
				return err
			}
		}

		exporter, err := export.NewEmailCSV(emailsOpts.output)
		if err != nil {
			return err
		}
		defer exporter.Close()

		sources := []driven.EmailSource{
			github.NewProfileSource(client),
			github.NewCommitSource(client, emailsOpts.delay),
			github.NewEventSource(client),
			github.NewPatchSource(client, github.NewHTMLClient(), emailsOpts.delay),
		}
		resolver = services.NewEmailResolver(sources, exporter, runStore, target)
	}

	stats, err := resolver.Resolve(cmd.Context(), users, driving.EmailOptions{
		Start:  emailsOpts.start,
		Stop:   emailsOpts.stop,
		Resume: emailsOpts.resume,
		Delay:  emailsOpts.delay,
	})
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	printEmailStats(cmd, stats)
	return nil
}

// seedResumeState folds usernames already present in the output CSV
// into the run store, so resume also covers runs recorded before the
// store existed.
func seedResumeState(cmd *cobra.Command, store driven.RunStore, target string) error {
	fromCSV, err := export.ScanProcessed(emailsOpts.output)
	if err != nil {
		return err
	}

	known, err := store.Keys(cmd.Context(), target)
	if err != nil {
		return err
	}

	seeded := 0
	for username := range fromCSV {
		if known[username] {
			continue
		}
		if err := store.Record(cmd.Context(), target, username); err != nil {
			return err
		}
		seeded++
	}
	if seeded > 0 {
		logger.Info("seeded %d processed users from %s", seeded, emailsOpts.output)
	}
	return nil
}

func printEmailStats(cmd *cobra.Command, stats *driving.EmailStats) {
	cmd.Printf("\nProcessed %d users: %d emails found (%.1f%%), %d misses, %d lookup errors, %d skipped\n",
		stats.Processed, stats.Found, stats.FoundRate(), stats.Misses, stats.APIErrors, stats.Skipped)

	if len(stats.BySource) == 0 {
		return
	}
	sources := make([]string, 0, len(stats.BySource))
	for source := range stats.BySource {
		sources = append(sources, string(source))
	}
	sort.Strings(sources)
	cmd.Println("By source:")
	for _, source := range sources {
		cmd.Printf("  %-8s %d\n", source, stats.BySource[domain.EmailSource(source)])
	}
}
