package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crossref"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/retry"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/secrets"
	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

// setDefaults registers configuration defaults with viper. Resolution
// order for every setting is flag > environment > config file > default.
func setDefaults() {
	viper.SetDefault("source.endpoint", crossref.DefaultEndpoint)
	viper.SetDefault("source.timeout", crossref.DefaultTimeout)
	viper.SetDefault("source.user_agent", "refcrawl/"+version)
	viper.SetDefault("source.rate_limit", crossref.DefaultRateLimit)
	viper.SetDefault("source.max_retries", retry.DefaultMaxRetries)
	viper.SetDefault("crawl.data_dir", "data")
	viper.SetDefault("grab.concurrency", 1)
}

// stringSetting resolves a string setting, preferring an explicitly set
// flag over the viper chain. Commands without the flag fall through to
// viper.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return viper.GetInt(key)
}

func durationSetting(cmd *cobra.Command, flag, key string) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	return viper.GetDuration(key)
}

// sourceConfig assembles the metadata-source settings. A missing contact
// address is a configuration error: the source's etiquette rules require
// one on every request (prd002 R4.1).
func sourceConfig(cmd *cobra.Command) (types.SourceConfig, error) {
	cfg := types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "source.timeout"),
			UserAgent: viper.GetString("source.user_agent"),
		},
		Endpoint:   stringSetting(cmd, "endpoint", "source.endpoint"),
		Mailto:     stringSetting(cmd, "mailto", "source.mailto"),
		PlusToken:  loadedSecrets.Get(secrets.KeyPlusToken),
		RateLimit:  viper.GetFloat64("source.rate_limit"),
		MaxRetries: viper.GetInt("source.max_retries"),
	}

	if cfg.Endpoint == "" {
		return cfg, fmt.Errorf("no source endpoint configured: set source.endpoint")
	}
	if cfg.Mailto == "" {
		return cfg, fmt.Errorf("no contact address configured: set source.mailto, REFCRAWL_SOURCE_MAILTO, or --mailto")
	}
	return cfg, nil
}

// crawlConfig assembles and validates the crawl settings (prd001 R1).
// Missing seed or keywords are startup configuration errors, reported
// before any crawling begins.
func crawlConfig(cmd *cobra.Command) (types.CrawlConfig, error) {
	rawKeywords := viper.GetStringSlice("crawl.keywords")
	if cmd.Flags().Changed("keywords") {
		s, _ := cmd.Flags().GetString("keywords")
		rawKeywords = []string{s}
	}

	cfg := types.CrawlConfig{
		Keywords: parseKeywords(rawKeywords),
		Seed:     stringSetting(cmd, "seed", "crawl.seed"),
		MaxNodes: intSetting(cmd, "max-nodes", "crawl.max_nodes"),
		MaxDepth: intSetting(cmd, "max-depth", "crawl.max_depth"),
		DataDir:  stringSetting(cmd, "data-dir", "crawl.data_dir"),
		StateDB:  stringSetting(cmd, "state-db", "crawl.state_db"),
	}

	if len(cfg.Keywords) == 0 {
		return cfg, fmt.Errorf("no keywords configured: set crawl.keywords, REFCRAWL_CRAWL_KEYWORDS, or --keywords")
	}
	if cfg.Seed == "" {
		return cfg, fmt.Errorf("no seed configured: set crawl.seed, REFCRAWL_CRAWL_SEED, or --seed")
	}
	cfg.Seed = crossref.Canonical(cfg.Seed)
	if !crossref.IsDOI(cfg.Seed) {
		return cfg, fmt.Errorf("seed %q is not a DOI", cfg.Seed)
	}
	return cfg, nil
}

// parseKeywords splits comma-separated keyword entries and drops blanks,
// so a single "graph,neural" flag value and a YAML list both work.
func parseKeywords(entries []string) []string {
	var keywords []string
	for _, entry := range entries {
		for _, k := range strings.Split(entry, ",") {
			k = strings.TrimSpace(k)
			if k != "" {
				keywords = append(keywords, k)
			}
		}
	}
	return keywords
}
