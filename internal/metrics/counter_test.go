package metrics

import (
	"testing"

	"github.com/spboyer/comborank/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCountNumbers_OrdersByCountThenFirstSeen(t *testing.T) {
	counts := CountNumbers([][]int{
		{5, 1, 2},
		{2, 1, 9},
		{9},
	})

	assert.Equal(t, []NumberCount{
		{Number: 1, Count: 2},
		{Number: 2, Count: 2},
		{Number: 9, Count: 2},
		{Number: 5, Count: 1},
	}, counts)
}

func TestCountNumbers_Rounds(t *testing.T) {
	counts := CountNumbers([]models.Round{{3, 3}, {4}})
	assert.Equal(t, []NumberCount{{Number: 3, Count: 2}, {Number: 4, Count: 1}}, counts)
}

func TestCountNumbers_Empty(t *testing.T) {
	assert.Empty(t, CountNumbers[[]int](nil))
}
