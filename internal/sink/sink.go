// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sink persists accepted records as they are found.
// Implements: prd001-crawler (R4);
//
//	docs/ARCHITECTURE § Result Sink.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

const (
	documentsFile = "documents.tsv"
	doisFile      = "dois.txt"

	tableHeader = "DOI\tTitle\n"
	doiResolver = "https://doi.org/"
)

// htmlTagPattern matches markup tags left in titles by the source
// (JATS fragments like <i> or <scp>).
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Documents appends accepted records to the two crawl output files:
// documents.tsv (resolver URL and title, tab separated) and dois.txt
// (bare DOIs, one per line). Both files are opened in append mode and
// written through per record, so a crawl stopped mid-run keeps every
// record accepted before the stop (R4.1).
type Documents struct {
	table *os.File
	dois  *os.File
}

// Open creates dir if needed and opens the output files for appending.
// The DOI/Title header is written once, when documents.tsv is new or
// empty (R4.2).
func Open(dir string) (*Documents, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	table, err := os.OpenFile(filepath.Join(dir, documentsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", documentsFile, err)
	}

	info, err := table.Stat()
	if err != nil {
		table.Close()
		return nil, fmt.Errorf("stat %s: %w", documentsFile, err)
	}
	if info.Size() == 0 {
		if _, err := table.WriteString(tableHeader); err != nil {
			table.Close()
			return nil, fmt.Errorf("writing %s header: %w", documentsFile, err)
		}
	}

	dois, err := os.OpenFile(filepath.Join(dir, doisFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		table.Close()
		return nil, fmt.Errorf("opening %s: %w", doisFile, err)
	}

	return &Documents{table: table, dois: dois}, nil
}

// Append writes one record to both files (R4.2, R4.3). Appends are
// unconditional: deduplication is the caller's concern (the crawler's
// visited set guarantees each identifier is appended at most once per
// run).
func (d *Documents) Append(w *types.Work) error {
	row := fmt.Sprintf("%s%s\t%s\n", doiResolver, w.DOI, sanitizeTitle(w.Title))
	if _, err := d.table.WriteString(row); err != nil {
		return fmt.Errorf("appending to %s: %w", documentsFile, err)
	}
	if _, err := d.dois.WriteString(w.DOI + "\n"); err != nil {
		return fmt.Errorf("appending to %s: %w", doisFile, err)
	}
	return nil
}

// Close closes both output files.
func (d *Documents) Close() error {
	tableErr := d.table.Close()
	doisErr := d.dois.Close()
	if tableErr != nil {
		return tableErr
	}
	return doisErr
}

// sanitizeTitle strips markup tags and flattens whitespace so a title
// occupies exactly one table cell.
func sanitizeTitle(title string) string {
	title = htmlTagPattern.ReplaceAllString(title, "")
	return strings.Join(strings.Fields(title), " ")
}
