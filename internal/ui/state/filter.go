package state

import (
	"math"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxResults caps how many candidates a search list will display.
const MaxResults = 150

// Candidate is a selectable row in a search list: an installed app or a
// catalog package.
type Candidate struct {
	ID          string
	Name        string
	Description string
}

// Label renders the candidate as "NAME (ID)".
func (c Candidate) Label() string {
	return c.Name + " (" + c.ID + ")"
}

// FilterByName keeps candidates whose name contains query, ignoring case.
// Source order is preserved and an empty query keeps everything.
func FilterByName(items []Candidate, query string) []Candidate {
	if query == "" {
		return cloneCandidates(items)
	}
	lower := strings.ToLower(query)
	filtered := make([]Candidate, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Rerank orders candidates so that names containing query come first, by
// position of the first match and then by lower-cased name. Candidates
// without a match are kept and sorted last by lower-cased name.
func Rerank(items []Candidate, query string) []Candidate {
	ranked := cloneCandidates(items)
	lower := strings.ToLower(query)
	type key struct {
		pos  int
		name string
	}
	keys := make(map[int]key, len(ranked))
	order := make([]int, len(ranked))
	for i, item := range ranked {
		name := strings.ToLower(item.Name)
		pos := strings.Index(name, lower)
		if pos < 0 {
			pos = math.MaxInt
		}
		keys[i] = key{pos: pos, name: name}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		if ka.pos != kb.pos {
			return ka.pos < kb.pos
		}
		return ka.name < kb.name
	})
	out := make([]Candidate, len(order))
	for i, idx := range order {
		out[i] = ranked[idx]
	}
	return out
}

// Cap truncates items to at most limit entries.
func Cap(items []Candidate, limit int) []Candidate {
	if limit < 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}

// Suggest returns the candidate name that most closely resembles query, or
// "" when nothing is close. It is used to hint at typos when a filter comes
// up empty.
func Suggest(items []Candidate, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 {
		return ""
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.Target
}

func cloneCandidates(items []Candidate) []Candidate {
	dup := make([]Candidate, len(items))
	copy(dup, items)
	return dup
}
