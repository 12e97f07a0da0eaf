// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Work holds the metadata resolved for one identifier.
// Per prd002-metadata-source R2.1-R2.7: title, optional authors, date, venue
// and subject tags, plus outbound reference identifiers.
type Work struct {
	// DOI is the normalized identifier of the work (e.g. "10.1145/3297280").
	DOI string `json:"doi" yaml:"doi"`

	// Title is the work's title. Crossref returns titles as a list; the
	// client joins the elements with a single space.
	Title string `json:"title" yaml:"title"`

	// Abstract is the abstract as returned by the source. It may contain
	// JATS markup; only the relevance filter reads it.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors lists the authors in source order, formatted "Given Family".
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Issued is the publication date. Sources often supply only a year.
	Issued Date `json:"issued,omitempty" yaml:"issued,omitempty"`

	// Venue is the container title (journal or proceedings name).
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Subjects lists the source's subject tags for the work.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	// References lists the DOIs the work cites, in source order. May contain
	// duplicates or self-references; entries without a DOI are dropped.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Date is a possibly partial publication date. A zero Year means the source
// supplied no usable date; Month and Day may be zero independently.
type Date struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
	Day   int `json:"day,omitempty" yaml:"day,omitempty"`
}

// IsZero reports whether no date information is present.
func (d Date) IsZero() bool { return d.Year == 0 }

// String formats the date with as many parts as are present:
// "2021-03-05", "2021-03", "2021", or "".
func (d Date) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// CrawlSummary holds the outcome counts of one crawl run.
// Per prd001-crawler R5.4: accepted, rejected, and failed entries, plus the
// total number of identifiers marked visited (including frontier entries
// never expanded because a stopping bound hit first).
type CrawlSummary struct {
	Accepted int `json:"accepted" yaml:"accepted"`
	Rejected int `json:"rejected" yaml:"rejected"`
	Failed   int `json:"failed" yaml:"failed"`
	Visited  int `json:"visited" yaml:"visited"`
}

// Processed returns the number of frontier entries actually expanded.
func (s CrawlSummary) Processed() int {
	return s.Accepted + s.Rejected + s.Failed
}

// String renders the one-line summary printed at the end of a run.
func (s CrawlSummary) String() string {
	return fmt.Sprintf("%d accepted, %d rejected, %d failed (%d visited)",
		s.Accepted, s.Rejected, s.Failed, s.Visited)
}
