package models

import "slices"

// Variant is one candidate combination being evaluated.
type Variant struct {
	ID      string `json:"id" yaml:"id"`
	Numbers []int  `json:"numbers" yaml:"numbers"`
}

// NumberSet returns the distinct numbers of the variant in first-seen order.
// Scoring treats a variant as a set, so duplicates never count twice.
func (v Variant) NumberSet() []int {
	set := make([]int, 0, len(v.Numbers))
	for _, n := range v.Numbers {
		if !slices.Contains(set, n) {
			set = append(set, n)
		}
	}
	return set
}

// Round is one historical draw. A round may hold more numbers than a variant.
type Round []int

// Sum returns the sum of the round's numbers.
func (r Round) Sum() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}
