// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

// Manifest is the on-disk record of a crawl run, written next to the
// output files. A later reader can tell which seed, keyword set, and
// bounds produced the data without consulting shell history.
// Implements: prd001-crawler R4.4.
type Manifest struct {
	Crawl   ManifestParams  `yaml:"crawl"`
	Summary ManifestSummary `yaml:"summary"`
}

// ManifestParams stores the run parameters in a serializable form.
type ManifestParams struct {
	Seed     string   `yaml:"seed"`
	Keywords []string `yaml:"keywords"`
	MaxNodes int      `yaml:"max_nodes,omitempty"`
	MaxDepth int      `yaml:"max_depth,omitempty"`
}

// ManifestSummary stores the run's counts and a timestamp.
type ManifestSummary struct {
	Accepted int       `yaml:"accepted"`
	Rejected int       `yaml:"rejected"`
	Failed   int       `yaml:"failed"`
	Visited  int       `yaml:"visited"`
	Finished time.Time `yaml:"finished"`
}

const manifestFile = "crawl.yaml"

// WriteManifest saves the run record to dir/crawl.yaml, replacing any
// previous one.
func WriteManifest(dir string, cfg types.CrawlConfig, summary types.CrawlSummary) error {
	m := Manifest{
		Crawl: ManifestParams{
			Seed:     cfg.Seed,
			Keywords: cfg.Keywords,
			MaxNodes: cfg.MaxNodes,
			MaxDepth: cfg.MaxDepth,
		},
		Summary: ManifestSummary{
			Accepted: summary.Accepted,
			Rejected: summary.Rejected,
			Failed:   summary.Failed,
			Visited:  summary.Visited,
			Finished: time.Now(),
		},
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling crawl manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644)
}

// ReadManifest loads the run record from dir/crawl.yaml.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading crawl manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing crawl manifest: %w", err)
	}
	return &m, nil
}
