package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "refcrawl/0.1"). Per prd002-metadata-source R4.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the metadata source client.
// Per prd002-metadata-source R1.1-R1.4, R4.1-R4.4.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the base URL of the works API
	// (default "https://api.crossref.org/works/").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Mailto is the contact address attached to every outbound request,
	// required by the source's etiquette rules.
	Mailto string `json:"mailto" yaml:"mailto"`

	// PlusToken is an optional Metadata Plus API token sent as the
	// Crossref-Plus-API-Token header.
	PlusToken string `json:"plus_token,omitempty" yaml:"plus_token,omitempty"`

	// RateLimit is the global request pacing in requests per second,
	// shared across all callers (default 5).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// MaxRetries is the attempt cap for transient failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CrawlConfig holds settings for the frontier crawl.
// Per prd001-crawler R1.1-R1.5, R4.1-R4.3.
type CrawlConfig struct {
	// Keywords are the relevance terms; the crawl refuses to start when
	// the set is empty.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Seed is the starting identifier (a DOI).
	Seed string `json:"seed" yaml:"seed"`

	// MaxNodes caps the number of accepted records; 0 means unbounded.
	MaxNodes int `json:"max_nodes" yaml:"max_nodes"`

	// MaxDepth caps the traversal depth from the seed; 0 means unbounded.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// DataDir is the directory for crawl outputs (documents.tsv, dois.txt,
	// crawl.yaml and the grabber files).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StateDB is the path of the SQLite crawl-state database. Empty means
	// the visited set lives in memory for the duration of the run.
	StateDB string `json:"state_db,omitempty" yaml:"state_db,omitempty"`
}

// GrabConfig holds settings for the batch grab utilities.
// Per prd003-grabbers R1.1-R1.3, R3.1.
type GrabConfig struct {
	// InputPath is the identifier list file, one DOI per line.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the flat output file, one line per input identifier.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Concurrency bounds the number of in-flight resolutions (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}
