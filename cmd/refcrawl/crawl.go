// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crawl"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/crossref"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/relevance"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/sink"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/state"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the citation graph outward from the seed DOI",
	Long: `Crawl expands a breadth-first frontier from the configured seed DOI,
resolving each identifier through the metadata source, keeping records whose
title, abstract, or subject tags match a configured keyword, and appending
accepted records to documents.tsv and dois.txt in the data directory as they
are found.

References of rejected records are not followed. With a state database the
visited set persists across invocations, so a re-run resumes around
everything already seen instead of reprocessing it.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().String("seed", "", "starting DOI (crawl.seed)")
	crawlCmd.Flags().String("keywords", "", "relevance keywords, comma-separated (crawl.keywords)")
	crawlCmd.Flags().Int("max-nodes", 0, "stop after N accepted records, 0 = unbounded (crawl.max_nodes)")
	crawlCmd.Flags().Int("max-depth", 0, "do not expand past depth N, 0 = unbounded (crawl.max_depth)")
	crawlCmd.Flags().String("data-dir", "", "output directory (crawl.data_dir, default data)")
	crawlCmd.Flags().String("state-db", "", "SQLite crawl-state path for a persistent visited set (crawl.state_db)")
	crawlCmd.Flags().String("endpoint", "", "metadata source base URL (source.endpoint)")
	crawlCmd.Flags().String("mailto", "", "contact address sent with every request (source.mailto)")
	crawlCmd.Flags().Duration("timeout", 0, "HTTP request timeout (source.timeout, default 30s)")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	srcCfg, err := sourceConfig(cmd)
	if err != nil {
		return err
	}
	crawlCfg, err := crawlConfig(cmd)
	if err != nil {
		return err
	}

	filter, err := relevance.New(crawlCfg.Keywords)
	if err != nil {
		return err
	}
	client := crossref.NewClient(srcCfg)

	docs, err := sink.Open(crawlCfg.DataDir)
	if err != nil {
		return err
	}
	defer docs.Close()

	var (
		visited  crawl.VisitedSet
		runStore *state.Store
	)
	if crawlCfg.StateDB != "" {
		runStore, err = state.NewStore(crawlCfg.StateDB)
		if err != nil {
			return err
		}
		defer runStore.Close()
		visited = runStore
	} else {
		visited = crawl.NewMemorySet()
	}

	crawler := crawl.New(client, filter, docs, visited, crawl.Options{
		MaxNodes:   crawlCfg.MaxNodes,
		MaxDepth:   crawlCfg.MaxDepth,
		MaxRetries: srcCfg.MaxRetries,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	summary, crawlErr := crawler.Crawl(ctx, crawlCfg.Seed, os.Stdout)

	// Record the run even when it stopped early; the sink already holds
	// everything accepted before the stop.
	if err := crawl.WriteManifest(crawlCfg.DataDir, crawlCfg, summary); err != nil {
		return err
	}
	if runStore != nil {
		run := state.Run{
			Started:  started,
			Seed:     crawlCfg.Seed,
			Keywords: crawlCfg.Keywords,
			Summary:  summary,
		}
		if err := runStore.RecordRun(context.Background(), run); err != nil {
			return err
		}
	}
	return crawlErr
}
