/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"slices"
	"strings"
)

// Submission is the text a player had in their answer box when answers
// were locked. Empty text means the player submitted nothing.
type Submission struct {
	PlayerID string
	Text     string
}

// Entry is a single answer that survived parsing and self-dedupe.
type Entry struct {
	PlayerID   string `json:"playerId"`
	Text       string `json:"answer"`
	Normalized string `json:"normalized"`
	Group      int    `json:"group"`
	Unique     bool   `json:"unique"`
	Points     int    `json:"points"`
}

// Group is a similarity group: every entry the matcher considers the same
// answer, possibly through a chain of near matches.
type Group struct {
	Canonical string   `json:"canonical"`
	Players   []string `json:"players"`
	Entries   []int    `json:"entries"`
	Unique    bool     `json:"unique"`
}

// ScoreRules are the per-entry values and the volume bonus step.
type ScoreRules struct {
	UniquePoints    int
	DuplicatePoints int
	BonusEvery      int
}

func DefaultScoreRules() ScoreRules {
	return ScoreRules{
		UniquePoints:    1,
		DuplicatePoints: -1,
		BonusEvery:      3,
	}
}

// Tally is the outcome of scoring one category round.
type Tally struct {
	Entries []Entry
	Groups  []Group
	Points  map[string]int
	Uniques map[string]int
	Bonus   map[string]int
}

func isEntrySeparator(r rune) bool {
	return r == ',' || r == ';' || r == '\n' || r == '\r'
}

// ParseEntries splits one submission into its answers. Blank items and
// case-insensitive repeats are dropped, keeping the first spelling.
func ParseEntries(raw string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, field := range strings.FieldsFunc(raw, isEntrySeparator) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		key := strings.ToLower(field)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, field)
	}

	return out
}

var leadingArticles = []string{"the ", "a ", "an "}

// Normalize lowercases s, collapses whitespace and strips leading
// articles. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")

	for stripped := true; stripped; {
		stripped = false
		for _, article := range leadingArticles {
			if rest, ok := strings.CutPrefix(s, article); ok {
				s = rest
				stripped = true
				break
			}
		}
	}

	return s
}

// IsSimilar reports whether two normalized answers count as the same
// answer. The allowed edit distance grows with the longer string.
func IsSimilar(a, b string) bool {
	if a == b {
		return true
	}

	ra, rb := []rune(a), []rune(b)
	diff := len(ra) - len(rb)
	if diff < 0 {
		diff = -diff
	}
	if diff > 3 {
		return false
	}

	return Levenshtein(ra, rb) <= editBudget(max(len(ra), len(rb)))
}

func editBudget(longest int) int {
	switch {
	case longest <= 4:
		return 1
	case longest <= 7:
		return 2
	default:
		return max(3, longest*3/10)
	}
}

// Levenshtein is the classic insert/delete/substitute edit distance.
func Levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	return prev[len(b)]
}

// dedupeOwn merges near-identical answers from one player, keeping the
// first spelling of each.
func dedupeOwn(texts []string) []Entry {
	var kept []Entry
	for _, text := range texts {
		norm := Normalize(text)
		similar := slices.ContainsFunc(kept, func(e Entry) bool {
			return IsSimilar(e.Normalized, norm)
		})
		if !similar {
			kept = append(kept, Entry{Text: text, Normalized: norm})
		}
	}
	return kept
}

// unionFind groups entries by dense index for the length of one scoring
// pass.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// ScoreAnswers runs duplicate detection over every player's locked
// submission and returns per-entry verdicts and per-player points.
func ScoreAnswers(subs []Submission, rules ScoreRules) Tally {
	t := Tally{
		Points:  make(map[string]int, len(subs)),
		Uniques: make(map[string]int, len(subs)),
		Bonus:   make(map[string]int),
	}

	for _, sub := range subs {
		t.Points[sub.PlayerID] += 0
		for _, e := range dedupeOwn(ParseEntries(sub.Text)) {
			e.PlayerID = sub.PlayerID
			t.Entries = append(t.Entries, e)
		}
	}

	uf := newUnionFind(len(t.Entries))
	for i := range t.Entries {
		for j := i + 1; j < len(t.Entries); j++ {
			if IsSimilar(t.Entries[i].Normalized, t.Entries[j].Normalized) {
				uf.union(i, j)
			}
		}
	}

	groupOf := make(map[int]int)
	for i := range t.Entries {
		root := uf.find(i)
		g, ok := groupOf[root]
		if !ok {
			g = len(t.Groups)
			groupOf[root] = g
			t.Groups = append(t.Groups, Group{})
		}

		grp := &t.Groups[g]
		grp.Entries = append(grp.Entries, i)
		if !slices.Contains(grp.Players, t.Entries[i].PlayerID) {
			grp.Players = append(grp.Players, t.Entries[i].PlayerID)
		}
		t.Entries[i].Group = g
	}

	for g := range t.Groups {
		t.Groups[g].Unique = len(t.Groups[g].Players) == 1
		t.Groups[g].Canonical = canonicalSpelling(t.Entries, t.Groups[g].Entries)
	}

	for i := range t.Entries {
		e := &t.Entries[i]
		e.Unique = t.Groups[e.Group].Unique
		if e.Unique {
			e.Points = rules.UniquePoints
			t.Uniques[e.PlayerID]++
		} else {
			e.Points = rules.DuplicatePoints
		}
		t.Points[e.PlayerID] += e.Points
	}

	if rules.BonusEvery > 0 {
		for id, n := range t.Uniques {
			if bonus := n / rules.BonusEvery; bonus > 0 {
				t.Bonus[id] = bonus
				t.Points[id] += bonus
			}
		}
	}

	return t
}

// canonicalSpelling picks the most common exact spelling in a group; the
// first one seen wins a tie.
func canonicalSpelling(entries []Entry, members []int) string {
	counts := make(map[string]int, len(members))
	best, bestCount := "", 0
	for _, i := range members {
		text := entries[i].Text
		counts[text]++
		if counts[text] > bestCount {
			best, bestCount = text, counts[text]
		}
	}
	return best
}
