package ranking

import "github.com/spboyer/comborank/internal/models"

// FrequencyTable counts how often every number occurs across all rounds.
type FrequencyTable struct {
	counts map[int]int
	max    int
}

// BuildFrequencyTable flattens all rounds into one multiset and counts it.
func BuildFrequencyTable(rounds []models.Round) *FrequencyTable {
	t := &FrequencyTable{counts: make(map[int]int)}
	for _, r := range rounds {
		for _, n := range r {
			t.counts[n]++
			if t.counts[n] > t.max {
				t.max = t.counts[n]
			}
		}
	}
	return t
}

// Count returns the number of occurrences of n, 0 when n never appeared.
func (t *FrequencyTable) Count(n int) int {
	return t.counts[n]
}

// Max returns the highest count in the table. An empty table reports 1 so
// it can always be used as a denominator.
func (t *FrequencyTable) Max() int {
	if t.max == 0 {
		return 1
	}
	return t.max
}

// Len returns the number of distinct numbers seen.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}
