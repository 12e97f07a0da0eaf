package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crawl"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded crawl runs",
	Long: `History lists the crawls recorded in the state database, oldest first.
Without a state database it falls back to the manifest the last crawl wrote
in the data directory.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("state-db", "", "SQLite crawl-state path (crawl.state_db)")
	historyCmd.Flags().String("data-dir", "", "data directory for the manifest fallback (crawl.data_dir)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	stateDB := stringSetting(cmd, "state-db", "crawl.state_db")
	if stateDB == "" {
		return manifestHistory(cmd)
	}

	store, err := state.NewStore(stateDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-16s  %-24s  %-24s  %s\n", "Started", "Seed", "Keywords", "Summary")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, run := range runs {
		seed := run.Seed
		if len(seed) > 24 {
			seed = seed[:21] + "..."
		}
		keywords := strings.Join(run.Keywords, ", ")
		if len(keywords) > 24 {
			keywords = keywords[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-24s  %-24s  %s\n",
			run.Started.Local().Format("2006-01-02 15:04"), seed, keywords, run.Summary)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// manifestHistory shows the last run from the data directory's manifest.
func manifestHistory(cmd *cobra.Command) error {
	dataDir := stringSetting(cmd, "data-dir", "crawl.data_dir")
	m, err := crawl.ReadManifest(dataDir)
	if err != nil {
		return fmt.Errorf("no crawl history available (configure crawl.state_db for a full history): %w", err)
	}

	fmt.Printf("Last crawl in %s:\n", dataDir)
	fmt.Printf("  seed:     %s\n", m.Crawl.Seed)
	fmt.Printf("  keywords: %s\n", strings.Join(m.Crawl.Keywords, ", "))
	if m.Crawl.MaxNodes > 0 {
		fmt.Printf("  max nodes: %d\n", m.Crawl.MaxNodes)
	}
	if m.Crawl.MaxDepth > 0 {
		fmt.Printf("  max depth: %d\n", m.Crawl.MaxDepth)
	}
	fmt.Printf("  summary:  %d accepted, %d rejected, %d failed (%d visited)\n",
		m.Summary.Accepted, m.Summary.Rejected, m.Summary.Failed, m.Summary.Visited)
	fmt.Printf("  finished: %s\n", m.Summary.Finished.Local().Format("2006-01-02 15:04"))
	return nil
}
