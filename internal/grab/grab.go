// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grab batch-resolves identifier lists into flat per-field files.
// Implements: prd003-grabbers (R1-R3);
//
//	docs/ARCHITECTURE § Grabbers.
package grab

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crossref"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/retry"
	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

// Unknown is written for identifiers whose field cannot be resolved.
const Unknown = "Unknown"

// Kind selects which record field a grab run extracts.
type Kind string

// Supported grab kinds (R2.1-R2.4).
const (
	Dates    Kind = "dates"
	Venues   Kind = "venues"
	Authors  Kind = "authors"
	Subjects Kind = "subjects"
)

// ParseKind maps a command argument to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Dates, Venues, Authors, Subjects:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown grab kind %q (want dates, venues, authors, or subjects)", s)
}

// Resolver fetches the record behind one identifier.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*types.Work, error)
}

// Options bound a grab run.
type Options struct {
	// Concurrency is the number of in-flight resolutions (default 1).
	// The resolver's own rate limiting stays global across them.
	Concurrency int

	// MaxRetries caps attempts for transient failures.
	MaxRetries int
}

// ReadIdentifiers loads one identifier per line from path, skipping
// blank lines (R1.1).
func ReadIdentifiers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening identifier list: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}
	return ids, nil
}

// Run resolves every identifier and writes one line per input, in input
// order, to outPath (R2.5). A failed entry prints a warning and emits
// Unknown; it never aborts the run (R2.6). Resolutions overlap up to
// Options.Concurrency; output order is preserved by slice position, and
// context cancellation stops the whole run.
func Run(ctx context.Context, resolver Resolver, kind Kind, ids []string, opts Options, progress io.Writer, outPath string) (int, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = retry.DefaultMaxRetries
	}

	lines := make([]string, len(ids))

	// progress is shared by all workers; one writer at a time.
	var mu sync.Mutex
	report := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(progress, format, args...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			var work *types.Work
			err := retry.Do(gctx, maxRetries, crossref.IsTransient, func() error {
				var rerr error
				work, rerr = resolver.Resolve(gctx, id)
				return rerr
			})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				report("[%d/%d] warning: %s: %v\n", i+1, len(ids), id, err)
				lines[i] = Unknown
				return nil
			}
			lines[i] = extract(work, kind)
			report("[%d/%d] %s: %s\n", i+1, len(ids), id, lines[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	out := strings.Join(lines, "\n")
	if len(lines) > 0 {
		out += "\n"
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(progress, "Saved %d %s to %s\n", len(lines), kind, outPath)
	return len(lines), nil
}

// extract formats the kind's field from a resolved record. Missing
// fields produce Unknown (R2.7).
func extract(w *types.Work, kind Kind) string {
	switch kind {
	case Dates:
		if w.Issued.IsZero() {
			return Unknown
		}
		return strconv.Itoa(w.Issued.Year)
	case Venues:
		if w.Venue == "" {
			return Unknown
		}
		return w.Venue
	case Authors:
		if len(w.Authors) == 0 {
			return Unknown
		}
		return strings.Join(w.Authors, ", ")
	case Subjects:
		if len(w.Subjects) == 0 {
			return Unknown
		}
		return strings.Join(w.Subjects, ", ")
	}
	return Unknown
}
