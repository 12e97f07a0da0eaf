package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crossref"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/grab"
)

var grabCmd = &cobra.Command{
	Use:   "grab dates|venues|authors|subjects",
	Short: "Batch-resolve a DOI list into one metadata field per line",
	Long: `Grab reads a DOI list (one per line, normally the dois.txt a crawl
wrote), resolves each through the metadata source, and writes the requested
field one line per input DOI, preserving input order. Unresolvable entries
emit "Unknown" instead of aborting the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runGrab,
}

func init() {
	grabCmd.Flags().String("input", "", "identifier list (default <data-dir>/dois.txt)")
	grabCmd.Flags().String("output", "", "output file (default <data-dir>/<kind>.txt)")
	grabCmd.Flags().Int("concurrency", 0, "in-flight resolutions (grab.concurrency, default 1)")
	grabCmd.Flags().String("mailto", "", "contact address sent with every request (source.mailto)")

	rootCmd.AddCommand(grabCmd)
}

func runGrab(cmd *cobra.Command, args []string) error {
	kind, err := grab.ParseKind(args[0])
	if err != nil {
		return err
	}
	srcCfg, err := sourceConfig(cmd)
	if err != nil {
		return err
	}

	dataDir := viper.GetString("crawl.data_dir")
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = filepath.Join(dataDir, "dois.txt")
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(dataDir, string(kind)+".txt")
	}

	ids, err := grab.ReadIdentifiers(input)
	if err != nil {
		return err
	}

	client := crossref.NewClient(srcCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := grab.Options{
		Concurrency: intSetting(cmd, "concurrency", "grab.concurrency"),
		MaxRetries:  srcCfg.MaxRetries,
	}
	_, err = grab.Run(ctx, client, kind, ids, opts, os.Stdout, output)
	return err
}
