// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refcrawl CLI.
// Implements: prd001-crawler, prd002-metadata-source, prd003-grabbers
// (CLI surface). See docs/ARCHITECTURE § Command Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the refcrawl CLI.
var rootCmd = &cobra.Command{
	Use:   "refcrawl",
	Short: "Keyword-filtered citation-graph crawler for academic metadata",
	Long: `refcrawl discovers academic-paper metadata by walking the citation graph
outward from a seed DOI. Each discovered record is kept or dropped by a keyword
relevance filter; accepted records are appended to a tab-separated documents
table as they are found, so a long crawl is inspectable mid-run.

The crawl is the core. The grab subcommands batch-resolve saved DOI lists into
flat per-field files (dates, venues, authors, subjects), and links normalizes
raw reference URLs into bare DOIs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refcrawl.yaml or ~/.config/refcrawl/refcrawl.yaml)")
}

func initConfig() {
	// A .env file can carry the seed, keyword, and contact settings as
	// REFCRAWL_* variables.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refcrawl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refcrawl"))
		}
	}

	viper.SetEnvPrefix("REFCRAWL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
