package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/grab"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Normalize raw reference links into bare DOIs",
	Long: `Links reads raw reference lines (resolver URLs, doi: prefixes, or bare
DOIs), canonicalizes each one, and writes the cleaned list one DOI per line,
ready for grab runs.`,
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().String("input", "", "raw link list (default <data-dir>/doi_links.txt)")
	linksCmd.Flags().String("output", "", "normalized DOI list (default <data-dir>/dois.txt)")

	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	dataDir := viper.GetString("crawl.data_dir")
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = filepath.Join(dataDir, "doi_links.txt")
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(dataDir, "dois.txt")
	}

	n, err := grab.NormalizeLinks(input, output)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d DOIs to %s\n", n, output)
	return nil
}
