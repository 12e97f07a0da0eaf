// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grab

import (
	"fmt"
	"os"
	"strings"

	"github.com/stefanshakeri/Recursive-Web-Search/internal/crossref"
)

// NormalizeLinks reads raw reference lines from src, canonicalizes each
// to a bare identifier, and writes them one per line to dst (R1.2).
// Lines that normalize to nothing are dropped; dst is replaced, not
// appended to. Returns the number of identifiers written.
func NormalizeLinks(src, dst string) (int, error) {
	lines, err := ReadIdentifiers(src)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	n := 0
	for _, raw := range lines {
		id := crossref.Canonical(raw)
		if id == "" {
			continue
		}
		b.WriteString(id)
		b.WriteByte('\n')
		n++
	}
	if err := os.WriteFile(dst, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dst, err)
	}
	return n, nil
}
