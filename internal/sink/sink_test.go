// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestOpenCreatesDirectoryAndHeader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Append(&types.Work{DOI: "10.1234/x", Title: "Graph Theory"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	table := readLines(t, filepath.Join(dir, "documents.tsv"))
	want := []string{"DOI\tTitle", "https://doi.org/10.1234/x\tGraph Theory"}
	if len(table) != len(want) || table[0] != want[0] || table[1] != want[1] {
		t.Errorf("documents.tsv = %q, want %q", table, want)
	}

	dois := readLines(t, filepath.Join(dir, "dois.txt"))
	if len(dois) != 1 || dois[0] != "10.1234/x" {
		t.Errorf("dois.txt = %q, want [10.1234/x]", dois)
	}
}

func TestHeaderWrittenOnceAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	for i, doi := range []string{"10.1/a", "10.1/b"} {
		d, err := Open(dir)
		if err != nil {
			t.Fatalf("Open #%d: %v", i, err)
		}
		if err := d.Append(&types.Work{DOI: doi, Title: "T"}); err != nil {
			t.Fatalf("Append #%d: %v", i, err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i, err)
		}
	}

	table := readLines(t, filepath.Join(dir, "documents.tsv"))
	if len(table) != 3 {
		t.Fatalf("documents.tsv has %d lines, want 3: %q", len(table), table)
	}
	if table[0] != "DOI\tTitle" {
		t.Errorf("first line = %q, want header", table[0])
	}
	for _, line := range table[1:] {
		if strings.HasPrefix(line, "DOI\t") {
			t.Errorf("header repeated: %q", line)
		}
	}

	// Append order preserved across reopens.
	if !strings.HasPrefix(table[1], "https://doi.org/10.1/a\t") ||
		!strings.HasPrefix(table[2], "https://doi.org/10.1/b\t") {
		t.Errorf("rows out of order: %q", table[1:])
	}

	dois := readLines(t, filepath.Join(dir, "dois.txt"))
	if len(dois) != 2 || dois[0] != "10.1/a" || dois[1] != "10.1/b" {
		t.Errorf("dois.txt = %q, want [10.1/a 10.1/b]", dois)
	}
}

func TestAppendVisibleBeforeClose(t *testing.T) {
	dir := t.TempDir()

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if err := d.Append(&types.Work{DOI: "10.1/a", Title: "First"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// A run killed after an accept must not lose the record.
	table := readLines(t, filepath.Join(dir, "documents.tsv"))
	if len(table) != 2 || table[1] != "https://doi.org/10.1/a\tFirst" {
		t.Errorf("documents.tsv before Close = %q", table)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Plain title", "Plain title"},
		{"<i>Graph</i> theory", "Graph theory"},
		{"<jats:p>Abstract-ish</jats:p> title", "Abstract-ish title"},
		{"Line one\nline two", "Line one line two"},
		{"Tabs\tbreak\tcells", "Tabs break cells"},
		{"  padded   and   wide  ", "padded and wide"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeTitle(tt.in); got != tt.want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppendEmptyTitle(t *testing.T) {
	dir := t.TempDir()

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Append(&types.Work{DOI: "10.1/x"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	table := readLines(t, filepath.Join(dir, "documents.tsv"))
	if table[1] != "https://doi.org/10.1/x\t" {
		t.Errorf("row = %q, want trailing empty title cell", table[1])
	}
}
