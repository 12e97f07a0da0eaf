// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crawl walks the citation graph outward from a seed identifier.
// Implements: prd001-crawler (R1, R3, R5);
//
//	docs/ARCHITECTURE § Frontier Crawler.
package crawl

import (
	"context"
	"fmt"
	"io"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crossref"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/relevance"
	"github.com/stefanshakeri/Recursive-Web-Search/internal/retry"
	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

// Resolver fetches the record behind one identifier.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*types.Work, error)
}

// Sink receives each record as soon as it is accepted.
type Sink interface {
	Append(*types.Work) error
}

// VisitedSet tracks identifiers the crawl has claimed. MarkIfNew must
// perform the membership check and the insert as one atomic operation
// (R3.2), so the same reference discovered from two parents is claimed
// exactly once.
type VisitedSet interface {
	MarkIfNew(ctx context.Context, id string) (bool, error)
}

// Options bound a crawl run.
type Options struct {
	// MaxNodes caps the number of accepted records; 0 means unbounded (R1.3).
	MaxNodes int

	// MaxDepth caps the traversal depth from the seed; 0 means unbounded (R1.4).
	MaxDepth int

	// MaxRetries caps attempts for transient resolution failures (R3.3).
	MaxRetries int

	// Normalize canonicalizes identifiers before any visited-set use.
	// Defaults to crossref.Canonical.
	Normalize func(string) string
}

// Crawler expands a frontier of identifiers breadth first, filters each
// resolved record for relevance, and persists accepted records as it
// goes. Rejected records are not expanded: relevance gates traversal as
// well as acceptance, so the crawl stays inside the relevance-connected
// subgraph around the seed (R3.4).
type Crawler struct {
	resolver Resolver
	filter   *relevance.Filter
	sink     Sink
	visited  VisitedSet
	opts     Options
}

// New assembles a Crawler, applying option defaults.
func New(resolver Resolver, filter *relevance.Filter, sink Sink, visited VisitedSet, opts Options) *Crawler {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = retry.DefaultMaxRetries
	}
	if opts.Normalize == nil {
		opts.Normalize = crossref.Canonical
	}
	return &Crawler{
		resolver: resolver,
		filter:   filter,
		sink:     sink,
		visited:  visited,
		opts:     opts,
	}
}

// entry is one identifier queued for expansion, with its distance from
// the seed.
type entry struct {
	id    string
	depth int
}

// Crawl runs the frontier expansion from seed, writing per-entry
// progress to w. FIFO expansion order guarantees every identifier at
// depth d is expanded before any at depth d+1, which is what gives
// MaxDepth its meaning (R3.1).
//
// Per-entry failures are contained: a bad identifier is reported,
// counted, and skipped (R3.5). Only context cancellation and I/O
// failures on the sink or the visited set end the run early; those
// return the counts gathered so far alongside the error.
func (c *Crawler) Crawl(ctx context.Context, seed string, w io.Writer) (types.CrawlSummary, error) {
	var summary types.CrawlSummary

	seed = c.opts.Normalize(seed)
	if seed == "" {
		return summary, fmt.Errorf("seed identifier is empty after normalization")
	}

	fresh, err := c.visited.MarkIfNew(ctx, seed)
	if err != nil {
		return summary, fmt.Errorf("marking seed visited: %w", err)
	}
	if !fresh {
		// A shared visited set already covers this seed (R6.1).
		fmt.Fprintf(w, "seed %s already visited, nothing to do\n", seed)
		return summary, nil
	}
	summary.Visited++

	frontier := []entry{{id: seed, depth: 0}}

	for len(frontier) > 0 && (c.opts.MaxNodes == 0 || summary.Accepted < c.opts.MaxNodes) {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		e := frontier[0]
		frontier = frontier[1:]

		work, err := c.resolve(ctx, e.id)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			fmt.Fprintf(w, "failed  %s: %v\n", e.id, err)
			summary.Failed++
			continue
		}

		if !c.filter.Match(work) {
			fmt.Fprintf(w, "rejected %s\n", e.id)
			summary.Rejected++
			continue
		}

		// Append before expanding so an interrupt never loses an
		// accepted record (R4.1).
		if err := c.sink.Append(work); err != nil {
			return summary, fmt.Errorf("appending %s: %w", e.id, err)
		}
		summary.Accepted++
		fmt.Fprintf(w, "accepted %s: %s\n", e.id, work.Title)

		if c.opts.MaxDepth > 0 && e.depth >= c.opts.MaxDepth {
			continue
		}
		for _, ref := range work.References {
			ref = c.opts.Normalize(ref)
			if ref == "" {
				continue
			}
			fresh, err := c.visited.MarkIfNew(ctx, ref)
			if err != nil {
				return summary, fmt.Errorf("marking %s visited: %w", ref, err)
			}
			if fresh {
				frontier = append(frontier, entry{id: ref, depth: e.depth + 1})
				summary.Visited++
			}
		}
	}

	fmt.Fprintf(w, "\ncrawl summary: %s\n", summary)
	return summary, nil
}

// resolve calls the resolver with bounded retries for transient
// outcomes (R3.3). Not-found and malformed responses are permanent and
// come back after a single attempt.
func (c *Crawler) resolve(ctx context.Context, id string) (*types.Work, error) {
	var work *types.Work
	err := retry.Do(ctx, c.opts.MaxRetries, crossref.IsTransient, func() error {
		var rerr error
		work, rerr = c.resolver.Resolve(ctx, id)
		return rerr
	})
	if err != nil {
		return nil, err
	}
	return work, nil
}
