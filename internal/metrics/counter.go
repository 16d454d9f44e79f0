package metrics

import "slices"

// NumberCount is how many times a number occurs.
type NumberCount struct {
	Number int `json:"number" yaml:"number"`
	Count  int `json:"count" yaml:"count"`
}

// CountNumbers counts every number across seqs. The result is ordered by
// count descending; equal counts keep the order in which the numbers were
// first seen.
func CountNumbers[S ~[]int](seqs []S) []NumberCount {
	index := make(map[int]int)
	var counts []NumberCount
	for _, seq := range seqs {
		for _, n := range seq {
			i, ok := index[n]
			if !ok {
				i = len(counts)
				index[n] = i
				counts = append(counts, NumberCount{Number: n})
			}
			counts[i].Count++
		}
	}
	slices.SortStableFunc(counts, func(a, b NumberCount) int {
		return b.Count - a.Count
	})
	return counts
}
