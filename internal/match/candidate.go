package match

import (
	"sort"
	"strings"
)

// Candidate is a scored name considered during a match.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores term against every name and returns the candidates sorted by
// score (descending), then by name. Names are compared lower-cased.
func Rank(term string, names []string, m Matcher) CandidateList {
	lowered := strings.ToLower(term)
	candidates := make(CandidateList, 0, len(names))

	for _, name := range names {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: m.Score(lowered, strings.ToLower(name)),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// CloseMatches returns up to n names whose similarity to term reaches cutoff,
// best first.
func CloseMatches(term string, names []string, n int, cutoff float64, m Matcher) []string {
	if n <= 0 {
		return nil
	}

	ranked := Rank(term, names, m).AboveThreshold(cutoff).Top(n)

	out := make([]string, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates whose score reaches threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if MeetsCutoff(cand.Score, threshold) {
			result = append(result, cand)
		}
	}

	return result
}
