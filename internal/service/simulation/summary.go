package simulation

import "sort"

// DepthDiffSummary is the first player's mean score over every match where the
// second player searched Diff plies deeper.
type DepthDiffSummary struct {
	Diff      int     `json:"diff"`
	MeanScore float64 `json:"meanScore"`
	Matches   int     `json:"matches"`
}

func Summarize(results []MatchResult) []DepthDiffSummary {
	totals := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range results {
		totals[r.DepthDiff()] += r.Score
		counts[r.DepthDiff()]++
	}

	summaries := make([]DepthDiffSummary, 0, len(counts))
	for diff, n := range counts {
		summaries = append(summaries, DepthDiffSummary{
			Diff:      diff,
			MeanScore: totals[diff] / float64(n),
			Matches:   n,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Diff < summaries[j].Diff
	})
	return summaries
}
