package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRunConfig_Overlay(t *testing.T) {
	cfg, err := DecodeRunConfig(DefaultRunConfig(), map[string]any{
		"numbers_per_combo": float64(6), // JSON numbers arrive as float64
		"output_count":      "50",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.NumbersPerCombo)
	assert.Equal(t, 50, cfg.OutputCount)
	assert.Equal(t, DefaultTotalNumbers, cfg.TotalNumbers)
	assert.Equal(t, DefaultWeights(), cfg.Weights)
}

func TestDecodeRunConfig_WeightsReplacedWholesale(t *testing.T) {
	cfg, err := DecodeRunConfig(DefaultRunConfig(), map[string]any{
		"weights": map[string]any{"frequency": 60, "match_complete": 40},
	})
	require.NoError(t, err)

	assert.Equal(t, Weights{Frequency: 60, MatchComplete: 40}, cfg.Weights)
	require.NoError(t, cfg.Validate())

	cfg, err = DecodeRunConfig(DefaultRunConfig(), map[string]any{
		"weights": map[string]any{"frequency": 60},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWeights)
}

func TestDecodeRunConfig_Errors(t *testing.T) {
	base := DefaultRunConfig()

	got, err := DecodeRunConfig(base, map[string]any{"colour": "blue"})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, base, got)

	_, err = DecodeRunConfig(base, map[string]any{"output_count": "lots"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDecodeRunConfig_Empty(t *testing.T) {
	cfg, err := DecodeRunConfig(DefaultRunConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), cfg)
}

func TestDecodeWeights(t *testing.T) {
	w, err := DecodeWeights(map[string]string{
		"frequency":      "40",
		"match_complete": "30",
		"match_partial":  "20",
		"distribution":   "10",
	})
	require.NoError(t, err)
	assert.Equal(t, Weights{Frequency: 40, MatchComplete: 30, MatchPartial: 20, Distribution: 10}, w)

	_, err = DecodeWeights(map[string]string{"frequency": "x"})
	require.ErrorIs(t, err, ErrInvalidWeights)

	_, err = DecodeWeights(map[string]string{"recency": "10"})
	require.ErrorIs(t, err, ErrInvalidWeights)
}
