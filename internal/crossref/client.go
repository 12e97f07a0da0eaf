// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref resolves DOIs to work metadata through the Crossref
// works API, with global request pacing and classified failures.
// Implements: prd002-metadata-source (R1-R4);
//
//	docs/ARCHITECTURE § Metadata Source.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

const (
	// DefaultEndpoint is the public Crossref works API base URL.
	DefaultEndpoint = "https://api.crossref.org/works/"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default request pacing in requests per second.
	// The public API tolerates far more, but discovery crawls run for a
	// while and the polite pool rewards restraint.
	DefaultRateLimit = 5.0
)

// Client is a rate-limited works API client. The limiter is shared by every
// caller holding the same Client, so pacing is global across the crawl loop
// and the grab utilities (R4.3).
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
	mailto     string
	userAgent  string
	plusToken  string
}

// NewClient builds a client from cfg, applying defaults for endpoint,
// timeout, and rate limit. It does not validate cfg; required settings are
// checked at startup by the CLI layer.
func NewClient(cfg types.SourceConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
		endpoint:   strings.TrimSuffix(endpoint, "/") + "/",
		mailto:     cfg.Mailto,
		userAgent:  cfg.UserAgent,
		plusToken:  cfg.PlusToken,
	}
}

// Resolve fetches the work record for a DOI. The mailto contact rides on
// every request as a query parameter (R4.1). Outcomes follow the taxonomy in
// errors.go; Resolve itself never retries, retry policy belongs to the
// caller's loop.
func (c *Client) Resolve(ctx context.Context, doi string) (*types.Work, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.endpoint + doi
	if c.mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.plusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.plusToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, DOI: doi}
	}

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("%w: decoding works message for %s: %v", ErrMalformed, doi, err)
	}

	work := toWork(wr.Message)
	if work.DOI == "" {
		work.DOI = Canonical(doi)
	}
	return work, nil
}

// toWork maps a works message onto the Work record shape.
func toWork(msg worksMessage) *types.Work {
	w := &types.Work{
		DOI:      Canonical(msg.DOI),
		Title:    strings.Join(msg.Title, " "),
		Abstract: msg.Abstract,
		Subjects: msg.Subject,
	}

	for _, a := range msg.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name == "" {
			name = strings.TrimSpace(a.Name)
		}
		if name != "" {
			w.Authors = append(w.Authors, name)
		}
	}

	if len(msg.ContainerTitle) > 0 {
		w.Venue = msg.ContainerTitle[0]
	}

	if len(msg.Issued.DateParts) > 0 {
		parts := msg.Issued.DateParts[0]
		if len(parts) > 0 {
			w.Issued.Year = parts[0]
		}
		if len(parts) > 1 {
			w.Issued.Month = parts[1]
		}
		if len(parts) > 2 {
			w.Issued.Day = parts[2]
		}
	}

	for _, ref := range msg.Reference {
		if ref.DOI != "" {
			w.References = append(w.References, ref.DOI)
		}
	}

	return w
}

// Works API JSON structures.
type worksResponse struct {
	Message worksMessage `json:"message"`
}

type worksMessage struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	Abstract       string           `json:"abstract"`
	Author         []worksAuthor    `json:"author"`
	ContainerTitle []string         `json:"container-title"`
	Issued         worksDate        `json:"issued"`
	Subject        []string         `json:"subject"`
	Reference      []worksReference `json:"reference"`
}

type worksAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type worksDate struct {
	DateParts [][]int `json:"date-parts"`
}

type worksReference struct {
	DOI string `json:"DOI"`
}
