package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbit-labs/gazer-cli/internal/adapters/driven/export"
	"github.com/orbit-labs/gazer-cli/internal/connectors/github"
	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/core/services"
)

var stargazersOpts struct {
	output    string
	startPage int
	maxPages  int
	retries   int
	delay     time.Duration
}

var stargazersCmd = &cobra.Command{
	Use:   "stargazers <repo-url>",
	Short: "Collect the stargazers of a GitHub repository",
	Long: `Walks the repository's stargazers listing page by page and writes
one CSV row per unique user. Accepts a full repository URL or the
owner/name shorthand.`,
	Args: cobra.ExactArgs(1),
	RunE: runStargazers,
}

func init() {
	stargazersCmd.Flags().StringVarP(&stargazersOpts.output, "output", "o", "stargazers.csv", "Output CSV file")
	stargazersCmd.Flags().IntVar(&stargazersOpts.startPage, "start-page", 1, "First listing page to fetch")
	stargazersCmd.Flags().IntVar(&stargazersOpts.maxPages, "max-pages", 1000, "Maximum number of pages to fetch")
	stargazersCmd.Flags().IntVar(&stargazersOpts.retries, "retries", 3, "Retry attempts per page")
	stargazersCmd.Flags().DurationVar(&stargazersOpts.delay, "delay", 1500*time.Millisecond, "Pause between page fetches")
	rootCmd.AddCommand(stargazersCmd)
}

func runStargazers(cmd *cobra.Command, args []string) error {
	repo, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return err
	}

	collector := stargazerCollector
	if collector == nil {
		exporter, err := export.NewStargazerCSV(stargazersOpts.output)
		if err != nil {
			return err
		}
		defer exporter.Close()

		retry := github.DefaultRetryConfig()
		retry.MaxRetries = stargazersOpts.retries
		lister := github.NewStargazerLister(github.NewHTMLClient(), retry)
		collector = services.NewStargazerCollector(lister, exporter)
	}

	cmd.Printf("Collecting stargazers of %s...\n", repo.FullName())

	stats, err := collector.Collect(cmd.Context(), repo, driving.StargazerOptions{
		StartPage: stargazersOpts.startPage,
		MaxPages:  stargazersOpts.maxPages,
		Delay:     stargazersOpts.delay,
	})
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	cmd.Printf("Done: %d unique stargazers over %d pages, saved to %s\n",
		stats.Unique, stats.PagesFetched, stargazersOpts.output)
	return nil
}
