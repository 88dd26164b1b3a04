package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	lo, hi, err := Analyze([]Reading{
		{Time: now, Value: 1.2},
		{Time: now, Value: -3.4},
		{Time: now, Value: 2.75},
		{Time: now, Value: 0},
	})
	require.NoError(t, err)
	assert.InDelta(t, -3.4, lo, 1e-9)
	assert.InDelta(t, 2.75, hi, 1e-9)
}

func TestAnalyzeSingleReading(t *testing.T) {
	t.Parallel()

	lo, hi, err := Analyze([]Reading{{Value: 4.2}})
	require.NoError(t, err)
	assert.Equal(t, lo, hi)
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	_, _, err := Analyze(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestParseResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Resolution
	}{
		{"coarse", Coarse},
		{"small", Coarse},
		{"normal", Normal},
		{"Medium", Normal},
		{" fine ", Fine},
		{"LARGE", Fine},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResolution(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseResolution("huge")
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestResolutionStep(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, Coarse.Step(), 0)
	assert.InDelta(t, 1.0, Normal.Step(), 0)
	assert.InDelta(t, 0.5, Fine.Step(), 0)
	assert.Equal(t, "fine", Fine.String())
	assert.Equal(t, "unknown", Resolution(0).String())
	assert.False(t, Resolution(9).Valid())
}
