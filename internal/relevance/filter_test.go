// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"testing"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

func TestNewRejectsEmptyKeywordSet(t *testing.T) {
	for _, kws := range [][]string{nil, {}, {""}, {"  ", "\t"}} {
		if _, err := New(kws); err == nil {
			t.Errorf("New(%q) should fail: empty keyword set rejects everything", kws)
		}
	}
}

func TestNewNormalizesKeywords(t *testing.T) {
	f, err := New([]string{" Graph ", "NEURAL"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := f.Keywords()
	if len(got) != 2 || got[0] != "graph" || got[1] != "neural" {
		t.Errorf("Keywords() = %v, want lowered and trimmed", got)
	}
}

func TestMatch(t *testing.T) {
	f, err := New([]string{"graph", "attention"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		work types.Work
		want bool
	}{
		{"title match", types.Work{Title: "Graph theory II"}, true},
		{"title case-insensitive", types.Work{Title: "GRAPH THEORY"}, true},
		{"substring inside word", types.Work{Title: "Subgraph mining"}, true},
		{"abstract match", types.Work{Title: "Unrelated", Abstract: "We use attention heads."}, true},
		{"subject match", types.Work{Title: "Unrelated", Subjects: []string{"Graph Theory"}}, true},
		{"second keyword", types.Work{Title: "Attention is all you need"}, true},
		{"no match", types.Work{Title: "Unrelated", Abstract: "Nothing here."}, false},
		{"empty record fails closed", types.Work{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Match(&tt.work); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchIsPure(t *testing.T) {
	f, err := New([]string{"graph"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w := types.Work{Title: "Graphs Everywhere", Abstract: "On graphs."}
	first := f.Match(&w)
	for i := 0; i < 5; i++ {
		if f.Match(&w) != first {
			t.Fatal("Match must be deterministic for the same work")
		}
	}
}
