package state

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRerankMatchesFirst(t *testing.T) {
	items := []Candidate{
		{ID: "a", Name: "Zeta"},
		{ID: "b", Name: "Alpha"},
	}
	got := Rerank(items, "al")
	if got[0].Name != "Alpha" || got[1].Name != "Zeta" {
		t.Fatalf("expected Alpha before Zeta, got %+v", got)
	}
	if items[0].Name != "Zeta" {
		t.Fatalf("rerank must not reorder its input")
	}
}

func TestRerankOrdersByPositionThenName(t *testing.T) {
	items := []Candidate{
		{ID: "1", Name: "Nothing"},
		{ID: "2", Name: "Metal Gear"},
		{ID: "3", Name: "almanac"},
		{ID: "4", Name: "Albatross"},
		{ID: "5", Name: "Another"},
	}
	got := Rerank(items, "AL")
	var names []string
	for _, item := range got {
		names = append(names, item.Name)
	}
	want := []string{"Albatross", "almanac", "Metal Gear", "Another", "Nothing"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("rerank order = %v, want %v", names, want)
	}
}

func TestFilterByNamePreservesOrder(t *testing.T) {
	items := []Candidate{
		{ID: "org.videolan.VLC", Name: "VLC"},
		{ID: "org.gimp.GIMP", Name: "GNU Image Manipulation Program"},
		{ID: "org.kde.kdenlive", Name: "Kdenlive"},
	}
	got := FilterByName(items, "N")
	if len(got) != 2 || got[0].ID != "org.gimp.GIMP" || got[1].ID != "org.kde.kdenlive" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if all := FilterByName(items, ""); len(all) != 3 {
		t.Fatalf("empty query should keep everything, got %d", len(all))
	}
	if none := FilterByName(items, "org."); len(none) != 0 {
		t.Fatalf("filter must match names only, got %+v", none)
	}
}

func TestCapLimitsResults(t *testing.T) {
	items := make([]Candidate, 300)
	for i := range items {
		items[i] = Candidate{ID: fmt.Sprintf("id.%d", i), Name: fmt.Sprintf("pkg %d", i)}
	}
	if got := Cap(items, MaxResults); len(got) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(got))
	}
	if got := Cap(items[:3], MaxResults); len(got) != 3 {
		t.Fatalf("short lists must be kept whole, got %d", len(got))
	}
}

func TestSuggestFindsClosestName(t *testing.T) {
	items := []Candidate{
		{ID: "org.gimp.GIMP", Name: "GIMP"},
		{ID: "org.inkscape.Inkscape", Name: "Inkscape"},
	}
	if got := Suggest(items, "inksc"); got != "Inkscape" {
		t.Fatalf("expected Inkscape, got %q", got)
	}
	if got := Suggest(items, "zzz"); got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}
	if got := Suggest(items, ""); got != "" {
		t.Fatalf("expected no suggestion for empty query, got %q", got)
	}
}

func TestQueryEditing(t *testing.T) {
	var q Query
	if q.DeleteBackward() {
		t.Fatalf("expected no-op on empty query")
	}
	if !q.Insert("ab") || q.Text != "ab" {
		t.Fatalf("unexpected text %q", q.Text)
	}
	if q.Insert("\t\x1b") {
		t.Fatalf("control characters must be ignored")
	}
	if !q.DeleteBackward() || q.Text != "a" {
		t.Fatalf("unexpected text after delete %q", q.Text)
	}
	if q.Empty() {
		t.Fatalf("expected non-empty query")
	}
}
