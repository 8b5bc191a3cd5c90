// internal/models/card_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRecord_MaxRewardRate(t *testing.T) {
	tests := []struct {
		name     string
		rates    []float64
		expected float64
	}{
		{name: "range", rates: []float64{2.0, 5.0}, expected: 5.0},
		{name: "single", rates: []float64{1.5}, expected: 1.5},
		{name: "fallback zero", rates: []float64{0.0}, expected: 0.0},
		{name: "unordered", rates: []float64{3.0, 1.0, 2.5}, expected: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := CardRecord{RewardRate: tt.rates}
			assert.Equal(t, tt.expected, card.MaxRewardRate())
		})
	}
}

func TestCardRecord_AgeFieldOmittedWhenNil(t *testing.T) {
	noMarker := CardRecord{CardName: "Plain", RewardRate: []float64{0.0}}
	markerNoDigits := CardRecord{CardName: "Vague", RewardRate: []float64{0.0}, AgeRange: []int{0}}

	plain, err := json.Marshal(noMarker)
	require.NoError(t, err)
	assert.NotContains(t, string(plain), `"age"`)

	vague, err := json.Marshal(markerNoDigits)
	require.NoError(t, err)
	assert.Contains(t, string(vague), `"age":[0]`)
}
